package interfaces

import (
	"context"

	"github.com/iwtcode/stationService/internal/domain/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases.
type Usecases interface {
	CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.SessionInfo, error)
	DeleteSession(sessionID string) error
	GetSession(sessionID string) (*models.SessionInfo, error)
	GetAllSessions() []*models.SessionInfo

	Connect(ctx context.Context, sessionID string) error
	Disconnect(sessionID string) error
	Configure(ctx context.Context, req models.ConfigureRequest) (string, error)
	StartMonitoring(ctx context.Context, sessionID string) error
	StopMonitoring(ctx context.Context, sessionID string) error
	SendCaptureResponse(req models.CaptureResponseRequest) error
}
