package session_service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iwtcode/stationService/internal/domain/entities"
	"github.com/iwtcode/stationService/pkg/station"
)

// События, публикуемые во внешний топик.
const (
	eventSessionCreated         = "session_created"
	eventSessionDeleted         = "session_deleted"
	eventSessionConfigured      = "session_configured"
	eventMonitoringStarted      = "monitoring_started"
	eventMonitoringStopped      = "monitoring_stopped"
	eventCaptureRequestReceived = "capture_request_received"
	eventCaptureResponseSent    = "capture_response_sent"
)

type sessionEvent struct {
	Event     string                  `json:"event"`
	SessionID string                  `json:"session_id"`
	StationID string                  `json:"station_id,omitempty"`
	URL       string                  `json:"url,omitempty"`
	Capture   *station.CaptureRequest `json:"capture,omitempty"`
	Timestamp time.Time               `json:"timestamp"`
}

// publish отправляет событие сессии в Kafka. Отправка асинхронная и не
// влияет на результат операции: недоступность брокера только логируется.
func (s *SessionRegistry) publish(event string, link *entities.StationLink, capture *station.CaptureRequest) {
	if s.producer == nil {
		return
	}
	s.send(sessionEvent{
		Event:     event,
		SessionID: link.SessionID,
		StationID: link.StationID,
		URL:       link.URL,
		Capture:   capture,
		Timestamp: time.Now().UTC(),
	})
}

func (s *SessionRegistry) publishCapture(sessionID string, req station.CaptureRequest) {
	if s.producer == nil {
		return
	}
	s.send(sessionEvent{
		Event:     eventCaptureRequestReceived,
		SessionID: sessionID,
		StationID: req.StationID,
		Capture:   &req,
		Timestamp: time.Now().UTC(),
	})
}

func (s *SessionRegistry) send(evt sessionEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		s.logger.Error("Failed to serialize session event", "event", evt.Event, "error", err)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.producer.Produce(ctx, []byte(evt.SessionID), data); err != nil {
			s.logger.Error("Failed to publish session event", "event", evt.Event, "sessionID", evt.SessionID, "error", err)
		}
	}()
}
