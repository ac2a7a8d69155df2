package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/iwtcode/stationService/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse возвращает стандартизированный ответ с ошибкой
func (h *Handler) ErrorResponse(c *gin.Context, err error, statusCode int, message string, showError bool) {
	errorMessage := message
	if showError && err != nil {
		errorMessage = message + ": " + err.Error()
	}

	h.logger.Error(message, "error", err, "statusCode", statusCode)
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status": "error",
		"error": gin.H{
			"code":    statusCode,
			"message": errorMessage,
		},
	})
}

// BadRequest возвращает ошибку 400
func (h *Handler) BadRequest(c *gin.Context, err error, message string) {
	if message == "" {
		message = apperrors.BadRequest
	}
	h.ErrorResponse(c, err, http.StatusBadRequest, message, true)
}

// InternalError возвращает ошибку 500
func (h *Handler) InternalError(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusInternalServerError, apperrors.InternalServerError, false)
}

// NotFound возвращает ошибку 404
func (h *Handler) NotFound(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusNotFound, apperrors.NotFound, true)
}

// respondOperationError сопоставляет ошибки протокола и реестра
// с HTTP-статусами.
func (h *Handler) respondOperationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnknownSession):
		h.NotFound(c, err)
	case errors.Is(err, apperrors.ErrNotConnected),
		errors.Is(err, apperrors.ErrNotConfigured),
		errors.Is(err, apperrors.ErrNotMonitoring),
		errors.Is(err, apperrors.ErrRequestInFlight):
		h.BadRequest(c, err, "Операция недопустима в текущем состоянии сессии")
	case errors.Is(err, apperrors.ErrConfigurationRejected),
		errors.Is(err, apperrors.ErrStartRejected),
		errors.Is(err, apperrors.ErrStopRejected):
		h.ErrorResponse(c, err, http.StatusBadGateway, "Станция отклонила запрос", true)
	case errors.Is(err, apperrors.ErrRequestTimeout),
		errors.Is(err, apperrors.ErrConnectionFailed):
		h.ErrorResponse(c, err, http.StatusBadGateway, "Станция недоступна", true)
	default:
		h.InternalError(c, err)
	}
}
