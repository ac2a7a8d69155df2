package handlers

import (
	"net/http"

	"github.com/iwtcode/stationService/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// StartMonitoring запускает мониторинг для сессии.
// @Summary Запустить мониторинг
// @Description Отправляет станции команду start_monitoring и ожидает подтверждения status=started.
// @Tags Monitoring
// @Accept json
// @Produce json
// @Param input body models.SessionRequest true "ID сессии"
// @Success 200 {object} models.MessageResponse "Мониторинг запущен"
// @Failure 400 {object} models.ErrorResponse "Сессия не сконфигурирована"
// @Failure 404 {object} models.ErrorResponse "Сессия не найдена"
// @Failure 502 {object} models.ErrorResponse "Станция не подтвердила запуск"
// @Router /monitoring/start [post]
func (h *Handler) StartMonitoring(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Missing or invalid SessionID")
		return
	}

	h.logger.Info("Attempting to start monitoring", "sessionID", req.SessionID)

	if err := h.usecase.StartMonitoring(c.Request.Context(), req.SessionID); err != nil {
		h.respondOperationError(c, err)
		return
	}

	h.logger.Info("Monitoring started", "sessionID", req.SessionID)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Monitoring started successfully"})
}

// StopMonitoring останавливает мониторинг для сессии.
// @Summary Остановить мониторинг
// @Description Отправляет станции команду stop_monitoring и ожидает подтверждения status=stopped.
// @Tags Monitoring
// @Accept json
// @Produce json
// @Param input body models.SessionRequest true "ID сессии"
// @Success 200 {object} models.MessageResponse "Мониторинг остановлен"
// @Failure 400 {object} models.ErrorResponse "Мониторинг не активен"
// @Failure 404 {object} models.ErrorResponse "Сессия не найдена"
// @Failure 502 {object} models.ErrorResponse "Станция не подтвердила остановку"
// @Router /monitoring/stop [post]
func (h *Handler) StopMonitoring(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Missing or invalid SessionID")
		return
	}

	h.logger.Info("Attempting to stop monitoring", "sessionID", req.SessionID)

	if err := h.usecase.StopMonitoring(c.Request.Context(), req.SessionID); err != nil {
		h.respondOperationError(c, err)
		return
	}

	h.logger.Info("Monitoring stopped", "sessionID", req.SessionID)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Monitoring stopped successfully"})
}

// SendCaptureResponse отправляет ответ на серверный запрос снимка.
// @Summary Ответить на запрос снимка
// @Description Отправляет capture_response и убирает запрос из очереди ожидающих по request id. Ответа сервера не ожидает.
// @Tags Capture
// @Accept json
// @Produce json
// @Param input body models.CaptureResponseRequest true "Данные ответа"
// @Success 200 {object} models.MessageResponse "Ответ отправлен"
// @Failure 400 {object} models.ErrorResponse "Сессия не подключена"
// @Failure 404 {object} models.ErrorResponse "Сессия не найдена"
// @Router /capture/response [post]
func (h *Handler) SendCaptureResponse(c *gin.Context) {
	var req models.CaptureResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	if err := h.usecase.SendCaptureResponse(req); err != nil {
		h.respondOperationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Capture response sent"})
}
