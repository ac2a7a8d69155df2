package session_service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/iwtcode/stationService/internal/config"
	"github.com/iwtcode/stationService/internal/domain/entities"
	"github.com/iwtcode/stationService/internal/domain/models"
	"github.com/iwtcode/stationService/internal/interfaces"
	"github.com/iwtcode/stationService/internal/middleware/logging"
	apperrors "github.com/iwtcode/stationService/pkg/errors"
	"github.com/iwtcode/stationService/pkg/station"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type managedSession struct {
	link *entities.StationLink
	conn *station.Connection
}

// SessionRegistry владеет пулом живых соединений со станциями мониторинга
// и долговременными записями их конфигураций. Запись в БД - единственный
// источник истины о том, какие подключения должны существовать; живое
// состояние никогда не сохраняется и после рестарта всегда начинается
// с disconnected.
type SessionRegistry struct {
	mu     sync.RWMutex
	pool   map[string]*managedSession
	dbRepo interfaces.StationLinkRepository

	producer interfaces.EventPublisher
	logger   *logging.Logger
	wsLogger *logrus.Logger
	realtime config.RealtimeConfig
}

func NewSessionRegistry(cfg *config.AppConfig, dbRepo interfaces.StationLinkRepository, producer interfaces.EventPublisher, logger *logging.Logger) *SessionRegistry {
	return &SessionRegistry{
		pool:     make(map[string]*managedSession),
		dbRepo:   dbRepo,
		producer: producer,
		logger:   logger.WithPrefix("REGISTRY"),
		wsLogger: newProtocolLogger(cfg),
		realtime: cfg.Realtime,
	}
}

// CreateSession сохраняет конфигурацию подключения и сразу пытается
// установить соединение и сконфигурировать мониторинг. Неудача любого из
// шагов не откатывает запись: конфигурация остается в БД для повторной
// попытки, а причина неудачи доступна через last_error сессии.
func (s *SessionRegistry) CreateSession(ctx context.Context, req models.CreateSessionRequest) (*models.SessionInfo, error) {
	if req.IntervalMinutes < 1 || req.IntervalMinutes > 1440 {
		return nil, fmt.Errorf("interval_minutes должен быть в диапазоне 1..1440, получено %d", req.IntervalMinutes)
	}

	userID := req.UserID
	if userID == "" {
		userID = s.realtime.OperatorUserID
	}

	sessionID := uuid.New().String()
	link := &entities.StationLink{
		SessionID:       sessionID,
		URL:             req.URL,
		StationID:       req.StationID,
		IntervalMinutes: req.IntervalMinutes,
		UserID:          userID,
		Status:          entities.StatusLinked,
	}
	if err := s.dbRepo.Create(link); err != nil {
		return nil, fmt.Errorf("не удалось сохранить подключение %s в БД: %w", sessionID, err)
	}

	conn := s.newConnection(sessionID, link)

	s.mu.Lock()
	s.pool[sessionID] = &managedSession{link: link, conn: conn}
	s.mu.Unlock()

	s.logger.Info("Session created", "sessionID", sessionID, "url", req.URL, "stationID", req.StationID)
	s.publish(eventSessionCreated, link, nil)

	// Автоматическая попытка connect + configure от имени оператора.
	if err := conn.Connect(ctx); err != nil {
		s.logger.Warn("Initial connect failed, session kept for retry", "sessionID", sessionID, "error", err)
		return s.buildInfo(link, conn), err
	}
	if _, err := conn.ConfigureMonitoring(ctx, link.StationID, link.UserID, link.IntervalMinutes); err != nil {
		s.logger.Warn("Initial configure failed, session kept for retry", "sessionID", sessionID, "error", err)
		return s.buildInfo(link, conn), err
	}

	return s.buildInfo(link, conn), nil
}

// DeleteSession отключает живое соединение (если оно есть), удаляет сессию
// из пула и стирает долговременную запись.
func (s *SessionRegistry) DeleteSession(sessionID string) error {
	s.mu.Lock()
	ms, exists := s.pool[sessionID]
	if exists {
		delete(s.pool, sessionID)
	}
	s.mu.Unlock()

	if !exists {
		err := s.dbRepo.Delete(sessionID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("ошибка удаления сессии '%s' из БД: %w", sessionID, err)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("сессия '%s': %w", sessionID, apperrors.ErrUnknownSession)
		}
		s.logger.Info("Session (not in pool) deleted from DB", "sessionID", sessionID)
		return nil
	}

	ms.conn.Disconnect()

	if err := s.dbRepo.Delete(sessionID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("ошибка удаления сессии '%s' из БД: %w", sessionID, err)
	}

	s.logger.Info("Session deleted", "sessionID", sessionID)
	s.publish(eventSessionDeleted, ms.link, nil)
	return nil
}

// GetSession возвращает конфигурацию и живое состояние одной сессии.
func (s *SessionRegistry) GetSession(sessionID string) (*models.SessionInfo, error) {
	ms, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	link := *ms.link
	s.mu.RUnlock()
	return s.buildInfo(&link, ms.conn), nil
}

// GetAllSessions возвращает снимок всех сессий. Живое состояние читается
// в момент вызова, а не из кэша.
func (s *SessionRegistry) GetAllSessions() []*models.SessionInfo {
	s.mu.RLock()
	sessions := make([]*managedSession, 0, len(s.pool))
	links := make([]entities.StationLink, 0, len(s.pool))
	for _, ms := range s.pool {
		sessions = append(sessions, ms)
		links = append(links, *ms.link)
	}
	s.mu.RUnlock()

	infos := make([]*models.SessionInfo, 0, len(sessions))
	for i, ms := range sessions {
		infos = append(infos, s.buildInfo(&links[i], ms.conn))
	}
	return infos
}

// RestoreSessions восстанавливает пул из БД при старте процесса. Каждая
// сохраненная конфигурация получает соединение в состоянии disconnected
// с пустым живым состоянием; сокеты никогда не переоткрываются
// автоматически - оператор должен заново запустить мониторинг.
func (s *SessionRegistry) RestoreSessions() error {
	links, err := s.dbRepo.GetAll()
	if err != nil {
		return fmt.Errorf("не удалось получить список подключений из БД: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range links {
		link := links[i]
		if _, exists := s.pool[link.SessionID]; exists {
			continue
		}
		s.pool[link.SessionID] = &managedSession{
			link: &link,
			conn: s.newConnection(link.SessionID, &link),
		}
		s.logger.Info("Session restored in disconnected state", "sessionID", link.SessionID, "url", link.URL)
	}
	return nil
}

// SeedStations создает сессии для предопределенных станций из файла
// начальной загрузки. Станции, для которых уже есть запись с тем же URL,
// пропускаются. Соединения не открываются.
func (s *SessionRegistry) SeedStations(stations []config.SeedStation) error {
	for _, st := range stations {
		existing, err := s.dbRepo.GetByURL(st.URL)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("ошибка проверки станции '%s' в БД: %w", st.URL, err)
		}
		if existing != nil {
			continue
		}

		userID := st.UserID
		if userID == "" {
			userID = s.realtime.OperatorUserID
		}
		link := &entities.StationLink{
			SessionID:       uuid.New().String(),
			URL:             st.URL,
			StationID:       st.StationID,
			IntervalMinutes: st.IntervalMinutes,
			UserID:          userID,
			Status:          entities.StatusLinked,
		}
		if err := s.dbRepo.Create(link); err != nil {
			return fmt.Errorf("не удалось сохранить станцию '%s' из файла загрузки: %w", st.URL, err)
		}

		s.mu.Lock()
		s.pool[link.SessionID] = &managedSession{link: link, conn: s.newConnection(link.SessionID, link)}
		s.mu.Unlock()

		s.logger.Info("Seeded station link", "sessionID", link.SessionID, "url", link.URL)
		s.publish(eventSessionCreated, link, nil)
	}
	return nil
}

// Connect открывает соединение для существующей сессии.
func (s *SessionRegistry) Connect(ctx context.Context, sessionID string) error {
	ms, err := s.get(sessionID)
	if err != nil {
		return err
	}
	return ms.conn.Connect(ctx)
}

// Disconnect закрывает соединение. Идемпотентен.
func (s *SessionRegistry) Disconnect(sessionID string) error {
	ms, err := s.get(sessionID)
	if err != nil {
		return err
	}
	ms.conn.Disconnect()
	return nil
}

// Configure изменяет конфигурацию мониторинга сессии. При успехе станции
// новая конфигурация синхронно записывается в БД.
func (s *SessionRegistry) Configure(ctx context.Context, req models.ConfigureRequest) (string, error) {
	ms, err := s.get(req.SessionID)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	userID := ms.link.UserID
	s.mu.RUnlock()

	connID, err := ms.conn.ConfigureMonitoring(ctx, req.StationID, userID, req.IntervalMinutes)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	ms.link.StationID = req.StationID
	ms.link.IntervalMinutes = req.IntervalMinutes
	link := *ms.link
	s.mu.Unlock()

	if err := s.dbRepo.Update(&link); err != nil {
		s.logger.Error("Failed to persist updated configuration", "sessionID", req.SessionID, "error", err)
		return connID, fmt.Errorf("конфигурация принята станцией, но не сохранена в БД: %w", err)
	}

	s.publish(eventSessionConfigured, &link, nil)
	return connID, nil
}

// StartMonitoring запускает мониторинг и фиксирует намерение в БД.
func (s *SessionRegistry) StartMonitoring(ctx context.Context, sessionID string) error {
	ms, err := s.get(sessionID)
	if err != nil {
		return err
	}
	if err := ms.conn.StartMonitoring(ctx); err != nil {
		return err
	}

	link := s.setStatus(ms, entities.StatusMonitored)
	if err := s.dbRepo.UpdateStatus(sessionID, entities.StatusMonitored); err != nil {
		s.logger.Error("Failed to update status in DB after starting monitoring", "sessionID", sessionID, "error", err)
	}
	s.publish(eventMonitoringStarted, &link, nil)
	return nil
}

// StopMonitoring останавливает мониторинг и фиксирует намерение в БД.
func (s *SessionRegistry) StopMonitoring(ctx context.Context, sessionID string) error {
	ms, err := s.get(sessionID)
	if err != nil {
		return err
	}
	if err := ms.conn.StopMonitoring(ctx); err != nil {
		return err
	}

	link := s.setStatus(ms, entities.StatusLinked)
	if err := s.dbRepo.UpdateStatus(sessionID, entities.StatusLinked); err != nil {
		s.logger.Error("Failed to update status in DB after stopping monitoring", "sessionID", sessionID, "error", err)
	}
	s.publish(eventMonitoringStopped, &link, nil)
	return nil
}

// SendCaptureResponse отправляет ответ на серверный запрос снимка.
// station_id берется из сохраненной конфигурации сессии.
func (s *SessionRegistry) SendCaptureResponse(req models.CaptureResponseRequest) error {
	ms, err := s.get(req.SessionID)
	if err != nil {
		return err
	}

	s.mu.RLock()
	stationID := ms.link.StationID
	link := *ms.link
	s.mu.RUnlock()

	if err := ms.conn.SendCaptureResponse(req.ImageID, req.ImageURL, req.RequestID, stationID); err != nil {
		return err
	}

	s.publish(eventCaptureResponseSent, &link, &station.CaptureRequest{
		ImageID:   req.ImageID,
		RequestID: req.RequestID,
		StationID: stationID,
	})
	return nil
}

func (s *SessionRegistry) get(sessionID string) (*managedSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ms, ok := s.pool[sessionID]
	if !ok {
		return nil, fmt.Errorf("сессия '%s': %w", sessionID, apperrors.ErrUnknownSession)
	}
	return ms, nil
}

func (s *SessionRegistry) setStatus(ms *managedSession, status string) entities.StationLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	ms.link.Status = status
	return *ms.link
}

func (s *SessionRegistry) newConnection(sessionID string, link *entities.StationLink) *station.Connection {
	return station.NewConnection(station.Options{
		URL:            link.URL,
		DialTimeout:    s.realtime.DialTimeout,
		RequestTimeout: s.realtime.RequestTimeout,
		Logger:         s.wsLogger,
		OnCaptureRequest: func(req station.CaptureRequest) {
			s.logger.Info("Capture request received", "sessionID", sessionID, "requestID", req.RequestID)
			s.publishCapture(sessionID, req)
		},
	})
}

func (s *SessionRegistry) buildInfo(link *entities.StationLink, conn *station.Connection) *models.SessionInfo {
	snap := conn.Snapshot()
	info := &models.SessionInfo{
		SessionID:          link.SessionID,
		URL:                link.URL,
		StationID:          link.StationID,
		IntervalMinutes:    link.IntervalMinutes,
		UserID:             link.UserID,
		Status:             link.Status,
		State:              snap.State.String(),
		IsConnected:        snap.IsConnected,
		IsMonitoring:       snap.IsMonitoring,
		ServerConnectionID: snap.ServerConnectionID,
		PendingCaptures:    snap.PendingCaptures,
		CreatedAt:          link.CreatedAt,
	}
	if snap.LastError != nil {
		info.LastError = snap.LastError.Error()
	}
	return info
}
