package models

import (
	"time"

	"github.com/iwtcode/stationService/pkg/station"
)

// CreateSessionRequest определяет структуру запроса на добавление подключения.
type CreateSessionRequest struct {
	URL             string `json:"url" binding:"required"`
	StationID       string `json:"station_id" binding:"required"`
	IntervalMinutes int    `json:"interval_minutes" binding:"required,gte=1,lte=1440"`
	// UserID опционален: по умолчанию берется идентификатор оператора
	// из конфигурации приложения.
	UserID string `json:"user_id"`
}

// SessionRequest определяет структуру для запросов, использующих SessionID.
type SessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// ConfigureRequest - запрос на изменение конфигурации мониторинга.
type ConfigureRequest struct {
	SessionID       string `json:"session_id" binding:"required"`
	StationID       string `json:"station_id" binding:"required"`
	IntervalMinutes int    `json:"interval_minutes" binding:"required,gte=1,lte=1440"`
}

// CaptureResponseRequest - ответ оператора на серверный запрос снимка.
type CaptureResponseRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	ImageID   string `json:"image_id" binding:"required"`
	ImageURL  string `json:"image_url" binding:"required"`
	RequestID string `json:"request_id" binding:"required"`
}

// SessionInfo объединяет долговременную конфигурацию и живое состояние
// соединения для отображения. Живые поля читаются в момент запроса,
// а не из кэша.
type SessionInfo struct {
	SessionID          string                   `json:"session_id"`
	URL                string                   `json:"url"`
	StationID          string                   `json:"station_id"`
	IntervalMinutes    int                      `json:"interval_minutes"`
	UserID             string                   `json:"user_id"`
	Status             string                   `json:"status"`
	State              string                   `json:"state"`
	IsConnected        bool                     `json:"is_connected"`
	IsMonitoring       bool                     `json:"is_monitoring"`
	ServerConnectionID string                   `json:"server_connection_id,omitempty"`
	LastError          string                   `json:"last_error,omitempty"`
	PendingCaptures    []station.CaptureRequest `json:"pending_captures"`
	CreatedAt          time.Time                `json:"created_at"`
}
