package errors

import (
	"errors"
	"fmt"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"
	UnauthorizedError   = "unauthorized"

	UnauthorizedErrorCode   = 401
	InvalidDataCode         = 402
	ForbiddenErrorCode      = 403
	InternalServerErrorCode = 500
	NotFoundErrorCode       = 404
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code         int    `json:"code"`    // HTTP статус код
	Message      string `json:"message"` // Сообщение для клиента
	Err          error  `json:"-"`       // Внутренняя ошибка, не для клиента
	IsUserFacing bool   `json:"-"`       // Флаг, указывающий, можно ли показывать `Err`
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error, isUserFacing bool) *AppError {
	return &AppError{
		Code:         httpCode,
		Message:      message,
		Err:          err,
		IsUserFacing: isUserFacing,
	}
}

// Ошибки протокола реального времени и реестра сессий.
var (
	// ErrConnectionFailed - транспортное соединение со станцией не удалось установить.
	ErrConnectionFailed = errors.New("connection failed")
	// ErrNotConnected - операция требует установленного соединения.
	ErrNotConnected = errors.New("not connected")
	// ErrNotConfigured - операция требует успешно выполненной конфигурации мониторинга.
	ErrNotConfigured = errors.New("monitoring is not configured")
	// ErrNotMonitoring - операция требует активного мониторинга.
	ErrNotMonitoring = errors.New("monitoring is not active")
	// ErrConfigurationRejected - станция отклонила конфигурацию (success=false).
	ErrConfigurationRejected = errors.New("configuration rejected by station")
	// ErrStartRejected - станция не подтвердила запуск мониторинга.
	ErrStartRejected = errors.New("start monitoring rejected by station")
	// ErrStopRejected - станция не подтвердила остановку мониторинга.
	ErrStopRejected = errors.New("stop monitoring rejected by station")
	// ErrRequestInFlight - запрос того же типа уже ожидает ответа на этом соединении.
	// Протокол не содержит request id, поэтому параллельные запросы одного типа
	// не могут быть корректно сопоставлены с ответами.
	ErrRequestInFlight = errors.New("request of this type is already in flight")
	// ErrRequestTimeout - коррелированный ответ не пришел за отведенное время.
	ErrRequestTimeout = errors.New("request timed out")
	// ErrUnknownSession - операция над несуществующей сессией.
	ErrUnknownSession = errors.New("unknown session")
)

var (
	ErrDataNotFound = errors.New("data not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)
