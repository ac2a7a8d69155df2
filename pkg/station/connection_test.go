package station

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

	apperrors "github.com/iwtcode/stationService/pkg/errors"
)

// mockStation эмулирует сервер станции мониторинга: принимает одно
// websocket-соединение и отвечает на кадры по заранее заданному сценарию.
type mockStation struct {
	t   *testing.T
	srv *httptest.Server

	mu      sync.Mutex
	conn    *websocket.Conn
	replies map[string]any

	writeMu sync.Mutex
}

func newMockStation(t *testing.T) *mockStation {
	m := &mockStation{t: t, replies: make(map[string]any)}
	upgrader := websocket.Upgrader{}

	m.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		m.mu.Lock()
		m.conn = conn
		m.mu.Unlock()

		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var env Envelope
			if json.Unmarshal(frame, &env) != nil {
				continue
			}
			m.mu.Lock()
			reply, ok := m.replies[env.Type]
			m.mu.Unlock()
			if ok && reply != nil {
				m.send(reply)
			}
		}
	}))
	t.Cleanup(m.srv.Close)
	return m
}

func (m *mockStation) url() string {
	return "ws" + strings.TrimPrefix(m.srv.URL, "http")
}

// replyWith задает ответ на входящий кадр указанного типа.
func (m *mockStation) replyWith(msgType string, reply any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies[msgType] = reply
}

// send отправляет кадр клиенту, дождавшись установления соединения.
func (m *mockStation) send(payload any) {
	data, err := json.Marshal(payload)
	require.NoError(m.t, err)

	var conn *websocket.Conn
	require.Eventually(m.t, func() bool {
		m.mu.Lock()
		conn = m.conn
		m.mu.Unlock()
		return conn != nil
	}, time.Second, 10*time.Millisecond, "Соединение со станцией не было установлено")

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	require.NoError(m.t, conn.WriteMessage(websocket.TextMessage, data))
}

// closeActive обрывает активное соединение со стороны сервера.
func (m *mockStation) closeActive() {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

func (m *mockStation) acceptConfiguration(connectionID string) {
	m.replyWith(MessageConfig, ConfigResponse{
		Type:         MessageConfigResponse,
		Success:      true,
		ConnectionID: connectionID,
	})
}

func (m *mockStation) acceptMonitoringCommands() {
	m.replyWith(MessageStartMonitoring, MonitoringStatus{Type: MessageMonitoringStatus, Status: MonitoringStarted})
	m.replyWith(MessageStopMonitoring, MonitoringStatus{Type: MessageMonitoringStatus, Status: MonitoringStopped})
}

func newTestConnection(t *testing.T, m *mockStation, opts ...func(*Options)) *Connection {
	o := Options{
		URL:            m.url(),
		DialTimeout:    2 * time.Second,
		RequestTimeout: 2 * time.Second,
		Logger:         newTestLogger(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	c := NewConnection(o)
	t.Cleanup(c.Disconnect)
	return c
}

func TestConnectAndConfigure(t *testing.T) {
	m := newMockStation(t)
	m.acceptConfiguration("abc")
	c := newTestConnection(t, m)

	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	require.NoError(t, c.Connect(ctx), "Повторный Connect на открытом соединении должен быть no-op")

	id, err := c.ConfigureMonitoring(ctx, "station-1", "operator", 15)
	require.NoError(t, err)
	require.Equal(t, "abc", id, "Должен вернуться connection id, присвоенный сервером")

	snap := c.Snapshot()
	require.Equal(t, StateConfigured, snap.State)
	require.True(t, snap.IsConnected)
	require.False(t, snap.IsMonitoring)
	require.Equal(t, "abc", snap.ServerConnectionID)
	require.NoError(t, snap.LastError)
}

func TestConfigureRejectedKeepsConnection(t *testing.T) {
	m := newMockStation(t)
	m.replyWith(MessageConfig, ConfigResponse{Type: MessageConfigResponse, Success: false})
	c := newTestConnection(t, m)

	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))

	_, err := c.ConfigureMonitoring(ctx, "station-1", "operator", 15)
	require.ErrorIs(t, err, apperrors.ErrConfigurationRejected)

	snap := c.Snapshot()
	require.Equal(t, StateConnected, snap.State, "Отказ в конфигурации не должен разрывать соединение")
	require.True(t, snap.IsConnected)
	require.ErrorIs(t, snap.LastError, apperrors.ErrConfigurationRejected)
}

func TestConfigureValidatesInterval(t *testing.T) {
	m := newMockStation(t)
	c := newTestConnection(t, m)

	_, err := c.ConfigureMonitoring(context.Background(), "station-1", "operator", 0)
	require.Error(t, err)
	_, err = c.ConfigureMonitoring(context.Background(), "station-1", "operator", 1441)
	require.Error(t, err)
}

func TestOperationsRequireConnection(t *testing.T) {
	m := newMockStation(t)
	c := newTestConnection(t, m)

	ctx := context.Background()
	_, err := c.ConfigureMonitoring(ctx, "station-1", "operator", 15)
	require.ErrorIs(t, err, apperrors.ErrNotConnected)

	require.ErrorIs(t, c.StartMonitoring(ctx), apperrors.ErrNotConnected)
	require.ErrorIs(t, c.StopMonitoring(ctx), apperrors.ErrNotMonitoring)
	require.ErrorIs(t, c.SendCaptureResponse("i1", "http://img", "r1", "station-1"), apperrors.ErrNotConnected)
}

func TestStartRequiresConfiguration(t *testing.T) {
	m := newMockStation(t)
	c := newTestConnection(t, m)

	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	require.ErrorIs(t, c.StartMonitoring(ctx), apperrors.ErrNotConfigured)
}

func TestMonitoringLifecycle(t *testing.T) {
	m := newMockStation(t)
	m.acceptConfiguration("conn-42")
	m.acceptMonitoringCommands()
	c := newTestConnection(t, m)

	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	_, err := c.ConfigureMonitoring(ctx, "station-1", "operator", 30)
	require.NoError(t, err)

	require.NoError(t, c.StartMonitoring(ctx))
	require.True(t, c.Snapshot().IsMonitoring)

	require.NoError(t, c.StartMonitoring(ctx), "Повторный запуск активного мониторинга должен быть no-op")

	require.NoError(t, c.StopMonitoring(ctx))
	snap := c.Snapshot()
	require.Equal(t, StateConfigured, snap.State, "После остановки конфигурация должна сохраняться")

	require.ErrorIs(t, c.StopMonitoring(ctx), apperrors.ErrNotMonitoring)
}

func TestStartRejectedByStation(t *testing.T) {
	m := newMockStation(t)
	m.acceptConfiguration("conn-42")
	m.replyWith(MessageStartMonitoring, MonitoringStatus{Type: MessageMonitoringStatus, Status: "error"})
	c := newTestConnection(t, m)

	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	_, err := c.ConfigureMonitoring(ctx, "station-1", "operator", 30)
	require.NoError(t, err)

	err = c.StartMonitoring(ctx)
	require.ErrorIs(t, err, apperrors.ErrStartRejected)
	require.False(t, c.Snapshot().IsMonitoring)
}

func TestCaptureQueue(t *testing.T) {
	m := newMockStation(t)
	m.acceptConfiguration("conn-42")

	captured := make(chan CaptureRequest, 2)
	c := newTestConnection(t, m, func(o *Options) {
		o.OnCaptureRequest = func(req CaptureRequest) { captured <- req }
	})

	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))

	m.send(map[string]string{
		"type":       MessageCaptureRequest,
		"image_id":   "img-1",
		"request_id": "req-1",
		"station_id": "station-1",
	})

	select {
	case req := <-captured:
		require.Equal(t, "req-1", req.RequestID)
	case <-time.After(2 * time.Second):
		t.Fatal("Запрос на снимок не был поставлен в очередь")
	}
	require.Len(t, c.Snapshot().PendingCaptures, 1)

	// Ответ с неизвестным request id оставляет очередь без изменений
	require.NoError(t, c.SendCaptureResponse("img-1", "http://img/1", "unknown", "station-1"))
	require.Len(t, c.Snapshot().PendingCaptures, 1)

	require.NoError(t, c.SendCaptureResponse("img-1", "http://img/1", "req-1", "station-1"))
	require.Empty(t, c.Snapshot().PendingCaptures)
}

func TestServerCloseResetsState(t *testing.T) {
	m := newMockStation(t)
	m.acceptConfiguration("conn-42")
	m.acceptMonitoringCommands()
	c := newTestConnection(t, m)

	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	_, err := c.ConfigureMonitoring(ctx, "station-1", "operator", 30)
	require.NoError(t, err)
	require.NoError(t, c.StartMonitoring(ctx))

	m.closeActive()

	require.Eventually(t, func() bool {
		return c.Snapshot().State == StateDisconnected
	}, 2*time.Second, 10*time.Millisecond, "Обрыв соединения должен возвращать автомат в disconnected")

	snap := c.Snapshot()
	require.False(t, snap.IsConnected, "Автоматического переподключения быть не должно")
	require.Empty(t, snap.ServerConnectionID)
}

func TestConfigureTimeout(t *testing.T) {
	m := newMockStation(t)
	// Сервер намеренно не отвечает на config
	c := newTestConnection(t, m, func(o *Options) {
		o.RequestTimeout = 100 * time.Millisecond
	})

	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))

	_, err := c.ConfigureMonitoring(ctx, "station-1", "operator", 15)
	require.ErrorIs(t, err, apperrors.ErrRequestTimeout)

	snap := c.Snapshot()
	require.Equal(t, StateConnected, snap.State, "Таймаут ожидания не должен разрывать соединение")
	require.ErrorIs(t, snap.LastError, apperrors.ErrRequestTimeout)
}

func TestServerErrorRecorded(t *testing.T) {
	m := newMockStation(t)
	c := newTestConnection(t, m)

	require.NoError(t, c.Connect(context.Background()))

	m.send(ServerError{Type: MessageError, Message: "camera offline"})

	require.Eventually(t, func() bool {
		snap := c.Snapshot()
		return snap.LastError != nil && strings.Contains(snap.LastError.Error(), "camera offline")
	}, 2*time.Second, 10*time.Millisecond, "Сообщение об ошибке станции должно сохраняться в lastError")

	require.True(t, c.Snapshot().IsConnected, "Кадр error не должен разрывать соединение")
}
