package station

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	apperrors "github.com/iwtcode/stationService/pkg/errors"
)

// State - состояние конечного автомата соединения.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateConfiguring
	StateConfigured
	StateMonitoring
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateConfiguring:
		return "configuring"
	case StateConfigured:
		return "configured"
	case StateMonitoring:
		return "monitoring"
	default:
		return "unknown"
	}
}

// Options - параметры создания соединения.
type Options struct {
	URL            string
	DialTimeout    time.Duration
	RequestTimeout time.Duration
	Logger         *logrus.Logger
	// OnCaptureRequest вызывается при постановке серверного запроса на снимок
	// в очередь. Может быть nil.
	OnCaptureRequest func(req CaptureRequest)
}

// Snapshot - копия живого состояния соединения на момент чтения.
// Живое состояние никогда не сохраняется в БД: после рестарта процесса
// соединение всегда начинает с disconnected.
type Snapshot struct {
	State              State
	IsConnected        bool
	IsMonitoring       bool
	ServerConnectionID string
	LastError          error
	PendingCaptures    []CaptureRequest
}

// Connection объединяет один сокет и один роутер сообщений и реализует
// сессионные операции протокола как корреляции запрос/ответ.
//
// Протокол не содержит идентификатора запроса, поэтому на каждое соединение
// допускается не более одного ожидающего запроса на каждый тип ответа:
// второй параллельный запрос того же типа завершается ErrRequestInFlight
// вместо риска отдать ответ не тому вызывающему.
type Connection struct {
	url            string
	requestTimeout time.Duration
	logger         *logrus.Logger
	socket         *Socket
	router         *Router
	onCapture      func(req CaptureRequest)

	mu           sync.Mutex
	state        State
	serverConnID string
	lastErr      error
	pending      []CaptureRequest
	inflight     map[string]bool
}

// NewConnection создает соединение в состоянии disconnected.
// Сокет не открывается до явного вызова Connect.
func NewConnection(opts Options) *Connection {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(os.Stdout)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}

	c := &Connection{
		url:            opts.URL,
		requestTimeout: requestTimeout,
		logger:         logger,
		router:         NewRouter(logger),
		onCapture:      opts.OnCaptureRequest,
		state:          StateDisconnected,
		inflight:       make(map[string]bool),
	}
	c.socket = NewSocket(opts.URL, opts.DialTimeout, logger)
	c.socket.SetHandlers(c.router.Dispatch, c.handleClosed)

	// Постоянные подписки: серверные запросы на снимок и сообщения об ошибках
	// приходят вне цикла запрос/ответ.
	c.router.Subscribe(MessageCaptureRequest, c.handleCaptureRequest)
	c.router.Subscribe(MessageError, c.handleServerError)

	return c
}

// URL возвращает адрес станции, к которой привязано соединение.
func (c *Connection) URL() string { return c.url }

// Connect открывает сокет. Успешно завершается без действий, если соединение
// уже установлено. После успеха lastError сбрасывается.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state >= StateConnected {
		c.mu.Unlock()
		return nil
	}
	if c.state == StateConnecting {
		c.mu.Unlock()
		return fmt.Errorf("connect: %w", apperrors.ErrRequestInFlight)
	}
	c.state = StateConnecting
	c.mu.Unlock()

	err := c.socket.Open(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateDisconnected
		c.lastErr = err
		return fmt.Errorf("%w: %v", apperrors.ErrConnectionFailed, err)
	}
	c.state = StateConnected
	c.lastErr = nil
	return nil
}

// ConfigureMonitoring отправляет сообщение config и ожидает config_response.
// Требует установленного соединения. Возвращает присвоенный сервером
// connection id; переход в configured происходит только при success=true.
func (c *Connection) ConfigureMonitoring(ctx context.Context, stationID, userID string, intervalMinutes int) (string, error) {
	if intervalMinutes < 1 || intervalMinutes > 1440 {
		return "", fmt.Errorf("interval_minutes must be within 1..1440, got %d", intervalMinutes)
	}

	c.mu.Lock()
	switch c.state {
	case StateDisconnected, StateConnecting:
		c.mu.Unlock()
		return "", apperrors.ErrNotConnected
	case StateConfiguring:
		c.mu.Unlock()
		return "", fmt.Errorf("configure: %w", apperrors.ErrRequestInFlight)
	case StateMonitoring:
		c.mu.Unlock()
		return "", fmt.Errorf("cannot reconfigure while monitoring is active: %w", apperrors.ErrNotConfigured)
	}
	prev := c.state
	c.state = StateConfiguring
	c.mu.Unlock()

	frame, err := c.roundTrip(ctx, MessageConfigResponse, ConfigMessage{
		Type:            MessageConfig,
		StationID:       stationID,
		UserID:          userID,
		IntervalMinutes: intervalMinutes,
	})
	if err != nil {
		c.restoreAfterConfigure(prev, err)
		return "", err
	}

	var resp ConfigResponse
	if err := json.Unmarshal(frame, &resp); err != nil {
		err = fmt.Errorf("decode config_response: %w", err)
		c.restoreAfterConfigure(prev, err)
		return "", err
	}
	if !resp.Success {
		c.restoreAfterConfigure(prev, apperrors.ErrConfigurationRejected)
		return "", apperrors.ErrConfigurationRejected
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConfiguring {
		// Сокет закрылся, пока ответ был в пути: успех уже неактуален.
		return "", apperrors.ErrNotConnected
	}
	c.state = StateConfigured
	c.serverConnID = resp.ConnectionID
	c.lastErr = nil
	c.logger.WithField("connection_id", resp.ConnectionID).Info("monitoring configured")
	return resp.ConnectionID, nil
}

// StartMonitoring отправляет start_monitoring и ожидает monitoring_status.
// Успех только при status=="started". Требует состояния configured.
func (c *Connection) StartMonitoring(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.state == StateMonitoring:
		c.mu.Unlock()
		return nil
	case c.state < StateConnected:
		c.mu.Unlock()
		return apperrors.ErrNotConnected
	case c.state != StateConfigured:
		c.mu.Unlock()
		return apperrors.ErrNotConfigured
	}
	c.mu.Unlock()

	status, err := c.monitoringCommand(ctx, MessageStartMonitoring)
	if err != nil {
		return err
	}
	if status != MonitoringStarted {
		c.setLastError(apperrors.ErrStartRejected)
		return fmt.Errorf("%w: status %q", apperrors.ErrStartRejected, status)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConfigured {
		return apperrors.ErrNotConnected
	}
	c.state = StateMonitoring
	c.lastErr = nil
	c.logger.Info("monitoring started")
	return nil
}

// StopMonitoring отправляет stop_monitoring и ожидает monitoring_status.
// Успех только при status=="stopped". Требует активного мониторинга.
func (c *Connection) StopMonitoring(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateMonitoring {
		c.mu.Unlock()
		return apperrors.ErrNotMonitoring
	}
	c.mu.Unlock()

	status, err := c.monitoringCommand(ctx, MessageStopMonitoring)
	if err != nil {
		return err
	}
	if status != MonitoringStopped {
		c.setLastError(apperrors.ErrStopRejected)
		return fmt.Errorf("%w: status %q", apperrors.ErrStopRejected, status)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateMonitoring {
		return nil
	}
	c.state = StateConfigured
	c.lastErr = nil
	c.logger.Info("monitoring stopped")
	return nil
}

// SendCaptureResponse отправляет capture_response без ожидания ответа сервера
// и убирает соответствующий запрос из очереди по request id. Ответ на
// неизвестный request id оставляет очередь без изменений.
func (c *Connection) SendCaptureResponse(imageID, imageURL, requestID, stationID string) error {
	c.mu.Lock()
	if c.state < StateConnected {
		c.mu.Unlock()
		return apperrors.ErrNotConnected
	}
	c.mu.Unlock()

	payload, err := json.Marshal(CaptureResponse{
		Type:      MessageCaptureResponse,
		ImageID:   imageID,
		ImageURL:  imageURL,
		RequestID: requestID,
		StationID: stationID,
	})
	if err != nil {
		return fmt.Errorf("marshal capture_response: %w", err)
	}
	if err := c.socket.Send(payload); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, req := range c.pending {
		if req.RequestID == requestID {
			c.pending = append(c.pending[:i:i], c.pending[i+1:]...)
			break
		}
	}
	c.logger.WithField("request_id", requestID).Debug("capture response sent")
	return nil
}

// Disconnect закрывает сокет. Идемпотентен. Живые поля состояния
// (isConnected, isMonitoring, serverConnectionId) сбрасываются.
func (c *Connection) Disconnect() {
	c.socket.Close()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateDisconnected
	c.serverConnID = ""
}

// Snapshot возвращает копию живого состояния для отображения.
func (c *Connection) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending := make([]CaptureRequest, len(c.pending))
	copy(pending, c.pending)
	return Snapshot{
		State:              c.state,
		IsConnected:        c.state >= StateConnected,
		IsMonitoring:       c.state == StateMonitoring,
		ServerConnectionID: c.serverConnID,
		LastError:          c.lastErr,
		PendingCaptures:    pending,
	}
}

// monitoringCommand выполняет команду с корреляцией по monitoring_status
// и возвращает полученный статус.
func (c *Connection) monitoringCommand(ctx context.Context, command string) (string, error) {
	frame, err := c.roundTrip(ctx, MessageMonitoringStatus, ControlMessage{Type: command})
	if err != nil {
		return "", err
	}
	var status MonitoringStatus
	if err := json.Unmarshal(frame, &status); err != nil {
		return "", fmt.Errorf("decode monitoring_status: %w", err)
	}
	return status.Status, nil
}

// roundTrip отправляет запрос и ожидает первый кадр указанного типа ответа.
// Каждое ожидание ограничено таймаутом: осиротевший слушатель снимается,
// а вызывающий получает ErrRequestTimeout вместо вечного ожидания.
func (c *Connection) roundTrip(ctx context.Context, responseType string, request any) (json.RawMessage, error) {
	if !c.claim(responseType) {
		return nil, fmt.Errorf("%s: %w", responseType, apperrors.ErrRequestInFlight)
	}
	defer c.release(responseType)

	waitCh, cancel := c.router.WaitFor(responseType)
	defer cancel()

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	if err := c.socket.Send(payload); err != nil {
		return nil, err
	}

	timer := time.NewTimer(c.requestTimeout)
	defer timer.Stop()
	select {
	case frame := <-waitCh:
		return frame, nil
	case <-timer.C:
		c.setLastError(apperrors.ErrRequestTimeout)
		return nil, fmt.Errorf("waiting for %s: %w", responseType, apperrors.ErrRequestTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Connection) claim(responseType string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[responseType] {
		return false
	}
	c.inflight[responseType] = true
	return true
}

func (c *Connection) release(responseType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, responseType)
}

func (c *Connection) restoreAfterConfigure(prev State, cause error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateConfiguring {
		c.state = prev
	}
	c.lastErr = cause
}

func (c *Connection) setLastError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}

// handleClosed - терминальное событие сокета. Единственный выход из
// транспортной ошибки - новый сокет, поэтому соединение всегда возвращается
// в disconnected.
func (c *Connection) handleClosed(err error) {
	c.mu.Lock()
	c.state = StateDisconnected
	c.serverConnID = ""
	if err != nil {
		c.lastErr = err
	}
	c.mu.Unlock()
}

// handleCaptureRequest ставит серверный запрос на снимок в очередь.
// Запросы принимаются в любом подсостоянии, пока сокет открыт.
func (c *Connection) handleCaptureRequest(frame json.RawMessage) {
	var req CaptureRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		c.logger.WithError(err).Warn("dropping malformed capture_request")
		return
	}

	c.mu.Lock()
	c.pending = append(c.pending, req)
	c.mu.Unlock()

	c.logger.WithField("request_id", req.RequestID).
		WithField("image_id", req.ImageID).
		Info("capture request queued")
	if c.onCapture != nil {
		c.onCapture(req)
	}
}

func (c *Connection) handleServerError(frame json.RawMessage) {
	var serverErr ServerError
	if err := json.Unmarshal(frame, &serverErr); err != nil {
		c.logger.WithError(err).Warn("dropping malformed error frame")
		return
	}
	c.logger.WithField("message", serverErr.Message).Warn("station reported an error")
	c.setLastError(fmt.Errorf("station error: %s", serverErr.Message))
}
