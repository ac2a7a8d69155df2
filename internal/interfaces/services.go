package interfaces

import (
	"context"

	"github.com/iwtcode/stationService/internal/config"
	"github.com/iwtcode/stationService/internal/domain/models"
)

// SessionService определяет контракт реестра сессий: управление пулом
// подключений к станциям мониторинга и делегирование протокольных операций.
type SessionService interface {
	CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.SessionInfo, error)
	DeleteSession(sessionID string) error
	GetSession(sessionID string) (*models.SessionInfo, error)
	GetAllSessions() []*models.SessionInfo
	RestoreSessions() error
	SeedStations(stations []config.SeedStation) error

	Connect(ctx context.Context, sessionID string) error
	Disconnect(sessionID string) error
	Configure(ctx context.Context, req models.ConfigureRequest) (string, error)
	StartMonitoring(ctx context.Context, sessionID string) error
	StopMonitoring(ctx context.Context, sessionID string) error
	SendCaptureResponse(req models.CaptureResponseRequest) error
}
