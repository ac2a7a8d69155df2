package station

import "encoding/json"

// Типы сообщений протокола мониторинга.
// Каждый кадр - это JSON-объект с обязательным полем "type".
const (
	MessageConfig           = "config"
	MessageConfigResponse   = "config_response"
	MessageStartMonitoring  = "start_monitoring"
	MessageStopMonitoring   = "stop_monitoring"
	MessageMonitoringStatus = "monitoring_status"
	MessageCaptureRequest   = "capture_request"
	MessageCaptureResponse  = "capture_response"
	MessageError            = "error"
)

// Значения поля status в сообщении monitoring_status.
const (
	MonitoringStarted = "started"
	MonitoringStopped = "stopped"
)

// Envelope используется для определения типа входящего кадра до полного разбора.
type Envelope struct {
	Type string `json:"type"`
}

// ConfigMessage - исходящий запрос конфигурации мониторинга.
type ConfigMessage struct {
	Type            string `json:"type"`
	StationID       string `json:"station_id"`
	UserID          string `json:"user_id"`
	IntervalMinutes int    `json:"interval_minutes"`
}

// ConfigResponse - ответ станции на запрос конфигурации.
// ConnectionID заполняется сервером только при success=true.
type ConfigResponse struct {
	Type         string `json:"type"`
	Success      bool   `json:"success"`
	ConnectionID string `json:"connection_id"`
}

// ControlMessage - исходящая команда без полезной нагрузки
// (start_monitoring / stop_monitoring).
type ControlMessage struct {
	Type string `json:"type"`
}

// MonitoringStatus - подтверждение станции на команду запуска/остановки.
type MonitoringStatus struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// CaptureRequest - инициированный сервером запрос на снимок.
// Приходит вне цикла запрос/ответ и ставится в очередь до ответа клиента.
type CaptureRequest struct {
	ImageID   string `json:"image_id"`
	RequestID string `json:"request_id"`
	StationID string `json:"station_id"`
}

// CaptureResponse - ответ клиента на CaptureRequest. Отправляется без ожидания
// подтверждения: дальнейшее поведение сервера вне контракта этой подсистемы.
type CaptureResponse struct {
	Type      string `json:"type"`
	ImageID   string `json:"image_id"`
	ImageURL  string `json:"image_url"`
	RequestID string `json:"request_id"`
	StationID string `json:"station_id"`
}

// ServerError - сообщение об ошибке со стороны станции.
// Полезная нагрузка определяется сервером, поэтому сохраняется как есть.
type ServerError struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}
