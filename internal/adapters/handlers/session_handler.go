package handlers

import (
	"net/http"

	"github.com/iwtcode/stationService/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// CreateSession добавляет подключение к станции мониторинга.
// @Summary Добавить подключение
// @Description Сохраняет конфигурацию подключения и сразу пытается установить соединение и сконфигурировать мониторинг. При неудаче конфигурация остается сохраненной для повторной попытки.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param input body models.CreateSessionRequest true "Параметры подключения"
// @Success 200 {object} models.CreateSessionResponse "Подключение создано"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 500 {object} models.ErrorResponse "Внутренняя ошибка сервера"
// @Router /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	h.logger.Info("Attempting to create a new session", "url", req.URL, "stationID", req.StationID)

	info, err := h.usecase.CreateSession(c.Request.Context(), req)
	if info == nil {
		h.InternalError(c, err)
		return
	}
	if err != nil {
		// Конфигурация сохранена, но соединение или конфигурирование не удалось.
		c.JSON(http.StatusOK, gin.H{"status": "degraded", "error": err.Error(), "session": info})
		return
	}

	h.logger.Info("Successfully created session", "sessionID", info.SessionID)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "session": info})
}

// GetSessions возвращает список всех подключений с живым состоянием.
// @Summary Получить список подключений
// @Description Возвращает сохраненные конфигурации вместе с текущим живым состоянием каждого соединения.
// @Tags Sessions
// @Produce json
// @Success 200 {object} models.GetSessionsResponse "Список подключений"
// @Router /sessions [get]
func (h *Handler) GetSessions(c *gin.Context) {
	sessions := h.usecase.GetAllSessions()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"pool_size": len(sessions),
		"sessions":  sessions,
	})
}

// DeleteSession удаляет подключение по SessionID.
// @Summary Удалить подключение
// @Description Отключает живое соединение, удаляет сессию из пула и стирает сохраненную конфигурацию.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param input body models.SessionRequest true "ID сессии для удаления"
// @Success 200 {object} models.MessageResponse "Сообщение об успешном удалении"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} models.ErrorResponse "Сессия не найдена"
// @Router /sessions [delete]
func (h *Handler) DeleteSession(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Missing or invalid SessionID")
		return
	}

	h.logger.Info("Attempting to delete session", "sessionID", req.SessionID)

	if err := h.usecase.DeleteSession(req.SessionID); err != nil {
		h.NotFound(c, err)
		return
	}

	h.logger.Info("Successfully deleted session", "sessionID", req.SessionID)
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Session " + req.SessionID + " removed successfully",
	})
}

// Connect открывает соединение для существующей сессии.
// @Summary Установить соединение
// @Description Открывает сокет для сохраненной сессии. Успешно завершается без действий, если соединение уже установлено.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param input body models.SessionRequest true "ID сессии"
// @Success 200 {object} models.MessageResponse "Соединение установлено"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} models.ErrorResponse "Сессия не найдена"
// @Router /sessions/connect [post]
func (h *Handler) Connect(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Missing or invalid SessionID")
		return
	}

	if err := h.usecase.Connect(c.Request.Context(), req.SessionID); err != nil {
		h.respondOperationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Session " + req.SessionID + " connected"})
}

// Disconnect закрывает соединение сессии.
// @Summary Разорвать соединение
// @Description Закрывает сокет сессии. Идемпотентен: отключение уже отключенной сессии успешно.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param input body models.SessionRequest true "ID сессии"
// @Success 200 {object} models.MessageResponse "Соединение закрыто"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса"
// @Failure 404 {object} models.ErrorResponse "Сессия не найдена"
// @Router /sessions/disconnect [post]
func (h *Handler) Disconnect(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Missing or invalid SessionID")
		return
	}

	if err := h.usecase.Disconnect(req.SessionID); err != nil {
		h.respondOperationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Session " + req.SessionID + " disconnected"})
}

// Configure изменяет конфигурацию мониторинга сессии.
// @Summary Изменить конфигурацию мониторинга
// @Description Отправляет станции новую конфигурацию и при подтверждении сохраняет ее в БД.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param input body models.ConfigureRequest true "Новая конфигурация"
// @Success 200 {object} models.ConfigureResponse "Конфигурация принята"
// @Failure 400 {object} models.ErrorResponse "Неверный формат запроса или неподходящее состояние"
// @Failure 404 {object} models.ErrorResponse "Сессия не найдена"
// @Failure 502 {object} models.ErrorResponse "Станция отклонила конфигурацию"
// @Router /sessions/configure [post]
func (h *Handler) Configure(c *gin.Context) {
	var req models.ConfigureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	connID, err := h.usecase.Configure(c.Request.Context(), req)
	if err != nil {
		h.respondOperationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "server_connection_id": connID})
}
