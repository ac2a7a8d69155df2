package station

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	apperrors "github.com/iwtcode/stationService/pkg/errors"
)

// Socket - одно постоянное полнодуплексное соединение со станцией мониторинга.
// За жизненный цикл соединения генерируется ровно одно терминальное событие
// закрытия; автоматического переподключения нет - закрытый сокет остается
// закрытым, пока вызывающая сторона явно не откроет его заново.
type Socket struct {
	url         string
	dialTimeout time.Duration
	logger      *logrus.Logger

	onMessage func(frame []byte)
	onClosed  func(err error)

	mu      sync.Mutex
	conn    *websocket.Conn
	closing bool

	writeMu sync.Mutex
}

// NewSocket создает сокет для указанного URL. Обработчики должны быть
// установлены через SetHandlers до вызова Open.
func NewSocket(url string, dialTimeout time.Duration, logger *logrus.Logger) *Socket {
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}
	return &Socket{
		url:         url,
		dialTimeout: dialTimeout,
		logger:      logger,
	}
}

// SetHandlers устанавливает обработчики входящих кадров и закрытия соединения.
func (s *Socket) SetHandlers(onMessage func(frame []byte), onClosed func(err error)) {
	s.onMessage = onMessage
	s.onClosed = onClosed
}

// Open устанавливает соединение и запускает цикл чтения.
// Повторный вызов на открытом сокете успешен и ничего не делает.
func (s *Socket) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.conn != nil {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: s.dialTimeout}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", s.url, err)
	}

	s.mu.Lock()
	if s.conn != nil {
		// Параллельный Open успел раньше, лишнее соединение закрываем.
		s.mu.Unlock()
		_ = conn.Close()
		return nil
	}
	s.conn = conn
	s.closing = false
	s.mu.Unlock()

	s.logger.WithField("url", s.url).Debug("socket opened")
	go s.readLoop(conn)
	return nil
}

// IsOpen сообщает, открыт ли сокет в данный момент.
func (s *Socket) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Send отправляет текстовый кадр. Возвращает ошибку, если сокет не открыт.
func (s *Socket) Send(frame []byte) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return apperrors.ErrNotConnected
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close закрывает соединение. Идемпотентен: закрытие уже закрытого сокета
// ничего не делает. Терминальное событие доставляется через onClosed
// после завершения цикла чтения.
func (s *Socket) Close() {
	s.mu.Lock()
	conn := s.conn
	if conn != nil {
		s.closing = true
	}
	s.mu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
}

// readLoop читает кадры до закрытия соединения. Ошибка чтения - единственный
// путь завершения жизненного цикла, поэтому терминальное событие гарантированно
// одно на соединение.
func (s *Socket) readLoop(conn *websocket.Conn) {
	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			s.terminate(conn, err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if s.onMessage != nil {
			s.onMessage(frame)
		}
	}
}

func (s *Socket) terminate(conn *websocket.Conn, err error) {
	s.mu.Lock()
	if s.conn != conn {
		s.mu.Unlock()
		return
	}
	s.conn = nil
	deliberate := s.closing
	s.closing = false
	s.mu.Unlock()

	_ = conn.Close()

	var closeErr error
	if !deliberate && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		closeErr = err
		s.logger.WithField("url", s.url).WithError(err).Warn("socket closed unexpectedly")
	} else {
		s.logger.WithField("url", s.url).Debug("socket closed")
	}
	if s.onClosed != nil {
		s.onClosed(closeErr)
	}
}
