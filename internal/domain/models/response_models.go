package models

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  struct {
		Code    int    `json:"code" example:"404"`
		Message string `json:"message" example:"Сессия не найдена"`
	} `json:"error"`
}

// MessageResponse представляет стандартный успешный ответ с сообщением.
type MessageResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Monitoring started successfully"`
}

// CreateSessionResponse представляет ответ при успешном добавлении подключения.
type CreateSessionResponse struct {
	Status  string       `json:"status" example:"ok"`
	Session *SessionInfo `json:"session"`
}

// GetSessionsResponse представляет ответ со списком всех подключений.
type GetSessionsResponse struct {
	Status   string         `json:"status" example:"ok"`
	PoolSize int            `json:"pool_size" example:"2"`
	Sessions []*SessionInfo `json:"sessions"`
}

// ConfigureResponse представляет ответ на успешную конфигурацию мониторинга.
type ConfigureResponse struct {
	Status             string `json:"status" example:"ok"`
	ServerConnectionID string `json:"server_connection_id" example:"abc"`
}
