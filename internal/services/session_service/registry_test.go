package session_service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iwtcode/stationService/internal/config"
	"github.com/iwtcode/stationService/internal/domain/entities"
	"github.com/iwtcode/stationService/internal/domain/models"
	"github.com/iwtcode/stationService/internal/middleware/logging"
	apperrors "github.com/iwtcode/stationService/pkg/errors"
	"github.com/iwtcode/stationService/pkg/station"
)

// fakeRepo - in-memory реализация StationLinkRepository для тестов.
type fakeRepo struct {
	mu    sync.Mutex
	links map[string]entities.StationLink
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{links: make(map[string]entities.StationLink)}
}

func (r *fakeRepo) Create(link *entities.StationLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.SessionID] = *link
	return nil
}

func (r *fakeRepo) Update(link *entities.StationLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[link.SessionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.links[link.SessionID] = *link
	return nil
}

func (r *fakeRepo) UpdateStatus(sessionID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[sessionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	link.Status = status
	r.links[sessionID] = link
	return nil
}

func (r *fakeRepo) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.links[sessionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.links, sessionID)
	return nil
}

func (r *fakeRepo) GetBySessionID(sessionID string) (*entities.StationLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	link, ok := r.links[sessionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &link, nil
}

func (r *fakeRepo) GetByURL(url string) (*entities.StationLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, link := range r.links {
		if link.URL == url {
			l := link
			return &l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetAll() ([]entities.StationLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	links := make([]entities.StationLink, 0, len(r.links))
	for _, link := range r.links {
		links = append(links, link)
	}
	return links, nil
}

func (r *fakeRepo) status(t *testing.T, sessionID string) string {
	t.Helper()
	link, err := r.GetBySessionID(sessionID)
	require.NoError(t, err)
	return link.Status
}

// nopPublisher отбрасывает все события.
type nopPublisher struct{}

func (nopPublisher) Produce(ctx context.Context, key, value []byte) error { return nil }
func (nopPublisher) Close() error                                         { return nil }

// stationServer - минимальный сервер станции: принимает конфигурацию
// и подтверждает команды запуска/остановки мониторинга.
func stationServer(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var env station.Envelope
			if json.Unmarshal(frame, &env) != nil {
				continue
			}
			var reply any
			switch env.Type {
			case station.MessageConfig:
				reply = station.ConfigResponse{Type: station.MessageConfigResponse, Success: true, ConnectionID: "srv-1"}
			case station.MessageStartMonitoring:
				reply = station.MonitoringStatus{Type: station.MessageMonitoringStatus, Status: station.MonitoringStarted}
			case station.MessageStopMonitoring:
				reply = station.MonitoringStatus{Type: station.MessageMonitoringStatus, Status: station.MonitoringStopped}
			default:
				continue
			}
			data, _ := json.Marshal(reply)
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func newTestRegistry(t *testing.T) (*SessionRegistry, *fakeRepo) {
	t.Helper()
	cfg := &config.AppConfig{
		Logging: config.LoggerConfig{Enable: false},
		Realtime: config.RealtimeConfig{
			DialTimeout:    2 * time.Second,
			RequestTimeout: 2 * time.Second,
			OperatorUserID: "operator",
		},
	}
	repo := newFakeRepo()
	logger := logging.NewLogger(&logging.Config{Enabled: false}, "TEST")
	return NewSessionRegistry(cfg, repo, nopPublisher{}, logger), repo
}

func TestCreateSessionAutoConfigures(t *testing.T) {
	reg, repo := newTestRegistry(t)
	url := stationServer(t)

	info, err := reg.CreateSession(context.Background(), models.CreateSessionRequest{
		URL:             url,
		StationID:       "station-1",
		IntervalMinutes: 15,
	})
	require.NoError(t, err)
	require.NotNil(t, info)
	require.True(t, info.IsConnected)
	require.Equal(t, "configured", info.State)
	require.Equal(t, "srv-1", info.ServerConnectionID)
	require.Equal(t, "operator", info.UserID, "Пустой user_id должен заменяться идентификатором оператора")

	saved, err := repo.GetBySessionID(info.SessionID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusLinked, saved.Status)
}

func TestCreateSessionConnectFailureKeepsRecord(t *testing.T) {
	reg, repo := newTestRegistry(t)

	info, err := reg.CreateSession(context.Background(), models.CreateSessionRequest{
		URL:             "ws://127.0.0.1:1",
		StationID:       "station-1",
		IntervalMinutes: 15,
	})
	require.Error(t, err, "Недоступная станция должна давать ошибку подключения")
	require.NotNil(t, info, "Запись сессии должна сохраняться для повторной попытки")
	require.False(t, info.IsConnected)
	require.NotEmpty(t, info.LastError)

	_, repoErr := repo.GetBySessionID(info.SessionID)
	require.NoError(t, repoErr, "Конфигурация должна оставаться в БД несмотря на неудачу")
}

func TestCreateSessionValidatesInterval(t *testing.T) {
	reg, repo := newTestRegistry(t)

	_, err := reg.CreateSession(context.Background(), models.CreateSessionRequest{
		URL:             "ws://127.0.0.1:1",
		StationID:       "station-1",
		IntervalMinutes: 0,
	})
	require.Error(t, err)

	links, _ := repo.GetAll()
	require.Empty(t, links, "Невалидный запрос не должен создавать записей")
}

func TestRestoreSessionsDisconnected(t *testing.T) {
	reg, repo := newTestRegistry(t)
	require.NoError(t, repo.Create(&entities.StationLink{SessionID: "s1", URL: "ws://a", StationID: "st-1", IntervalMinutes: 5, Status: entities.StatusMonitored}))
	require.NoError(t, repo.Create(&entities.StationLink{SessionID: "s2", URL: "ws://b", StationID: "st-2", IntervalMinutes: 10, Status: entities.StatusLinked}))

	require.NoError(t, reg.RestoreSessions())

	infos := reg.GetAllSessions()
	require.Len(t, infos, 2)
	for _, info := range infos {
		require.Equal(t, "disconnected", info.State, "Восстановленные сессии не должны переподключаться автоматически")
		require.False(t, info.IsConnected)
		require.False(t, info.IsMonitoring)
		require.Empty(t, info.ServerConnectionID)
	}
}

func TestDeleteSession(t *testing.T) {
	reg, repo := newTestRegistry(t)
	url := stationServer(t)

	info, err := reg.CreateSession(context.Background(), models.CreateSessionRequest{
		URL:             url,
		StationID:       "station-1",
		IntervalMinutes: 15,
	})
	require.NoError(t, err)

	require.NoError(t, reg.DeleteSession(info.SessionID))

	_, err = repo.GetBySessionID(info.SessionID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound, "Долговременная запись должна удаляться")

	_, err = reg.GetSession(info.SessionID)
	require.ErrorIs(t, err, apperrors.ErrUnknownSession)

	require.ErrorIs(t, reg.DeleteSession(info.SessionID), apperrors.ErrUnknownSession)
}

func TestMonitoringPersistsStatus(t *testing.T) {
	reg, repo := newTestRegistry(t)
	url := stationServer(t)

	ctx := context.Background()
	info, err := reg.CreateSession(ctx, models.CreateSessionRequest{
		URL:             url,
		StationID:       "station-1",
		IntervalMinutes: 15,
	})
	require.NoError(t, err)

	require.NoError(t, reg.StartMonitoring(ctx, info.SessionID))
	require.Equal(t, entities.StatusMonitored, repo.status(t, info.SessionID))

	current, err := reg.GetSession(info.SessionID)
	require.NoError(t, err)
	require.True(t, current.IsMonitoring)

	require.NoError(t, reg.StopMonitoring(ctx, info.SessionID))
	require.Equal(t, entities.StatusLinked, repo.status(t, info.SessionID))
}

func TestUnknownSessionOperations(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	require.ErrorIs(t, reg.Connect(ctx, "missing"), apperrors.ErrUnknownSession)
	require.ErrorIs(t, reg.Disconnect("missing"), apperrors.ErrUnknownSession)
	require.ErrorIs(t, reg.StartMonitoring(ctx, "missing"), apperrors.ErrUnknownSession)
	require.ErrorIs(t, reg.StopMonitoring(ctx, "missing"), apperrors.ErrUnknownSession)

	_, err := reg.Configure(ctx, models.ConfigureRequest{SessionID: "missing", StationID: "st", IntervalMinutes: 5})
	require.ErrorIs(t, err, apperrors.ErrUnknownSession)

	err = reg.SendCaptureResponse(models.CaptureResponseRequest{SessionID: "missing", ImageID: "i", ImageURL: "u", RequestID: "r"})
	require.ErrorIs(t, err, apperrors.ErrUnknownSession)
}

func TestSeedStationsSkipsExisting(t *testing.T) {
	reg, repo := newTestRegistry(t)
	require.NoError(t, repo.Create(&entities.StationLink{SessionID: "s1", URL: "ws://known", StationID: "st-1", IntervalMinutes: 5, Status: entities.StatusLinked}))

	err := reg.SeedStations([]config.SeedStation{
		{URL: "ws://known", StationID: "st-1", IntervalMinutes: 5},
		{URL: "ws://new", StationID: "st-2", IntervalMinutes: 10},
	})
	require.NoError(t, err)

	links, _ := repo.GetAll()
	require.Len(t, links, 2, "Станция с известным URL не должна дублироваться")

	seeded, err := repo.GetByURL("ws://new")
	require.NoError(t, err)
	require.Equal(t, "operator", seeded.UserID)
	require.Equal(t, entities.StatusLinked, seeded.Status)
}

func TestConfigurePersistsNewSettings(t *testing.T) {
	reg, repo := newTestRegistry(t)
	url := stationServer(t)

	ctx := context.Background()
	info, err := reg.CreateSession(ctx, models.CreateSessionRequest{
		URL:             url,
		StationID:       "station-1",
		IntervalMinutes: 15,
	})
	require.NoError(t, err)

	// Повторная конфигурация допустима из состояния configured
	connID, err := reg.Configure(ctx, models.ConfigureRequest{
		SessionID:       info.SessionID,
		StationID:       "station-2",
		IntervalMinutes: 60,
	})
	require.NoError(t, err)
	require.Equal(t, "srv-1", connID)

	saved, err := repo.GetBySessionID(info.SessionID)
	require.NoError(t, err)
	require.Equal(t, "station-2", saved.StationID)
	require.Equal(t, 60, saved.IntervalMinutes)
}
