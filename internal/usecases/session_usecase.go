package usecases

import (
	"context"

	"github.com/iwtcode/stationService/internal/domain/models"
	"github.com/iwtcode/stationService/internal/interfaces"
)

type Usecase struct {
	sessionSvc interfaces.SessionService
}

func NewUsecase(sessionSvc interfaces.SessionService) interfaces.Usecases {
	return &Usecase{
		sessionSvc: sessionSvc,
	}
}

func (u *Usecase) CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.SessionInfo, error) {
	return u.sessionSvc.CreateSession(ctx, req)
}

func (u *Usecase) DeleteSession(sessionID string) error {
	return u.sessionSvc.DeleteSession(sessionID)
}

func (u *Usecase) GetSession(sessionID string) (*models.SessionInfo, error) {
	return u.sessionSvc.GetSession(sessionID)
}

func (u *Usecase) GetAllSessions() []*models.SessionInfo {
	return u.sessionSvc.GetAllSessions()
}

func (u *Usecase) Connect(ctx context.Context, sessionID string) error {
	return u.sessionSvc.Connect(ctx, sessionID)
}

func (u *Usecase) Disconnect(sessionID string) error {
	return u.sessionSvc.Disconnect(sessionID)
}

func (u *Usecase) Configure(ctx context.Context, req models.ConfigureRequest) (string, error) {
	return u.sessionSvc.Configure(ctx, req)
}

func (u *Usecase) StartMonitoring(ctx context.Context, sessionID string) error {
	return u.sessionSvc.StartMonitoring(ctx, sessionID)
}

func (u *Usecase) StopMonitoring(ctx context.Context, sessionID string) error {
	return u.sessionSvc.StopMonitoring(ctx, sessionID)
}

func (u *Usecase) SendCaptureResponse(req models.CaptureResponseRequest) error {
	return u.sessionSvc.SendCaptureResponse(req)
}
