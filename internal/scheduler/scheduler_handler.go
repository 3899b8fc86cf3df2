package scheduler

import (
	"net/http"

	"go-leaveco/internal/shared/apperror"
	"go-leaveco/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("scheduler.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("scheduler request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) TriggerRollover(c *gin.Context) {
	var req TriggerRolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http trigger rollover validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	if err := h.service.TriggerRollover(c.Request.Context(), c.GetString("employee_id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "rollover executed"}, nil)
}

func (h *Handler) ListExecutions(c *gin.Context) {
	resp, err := h.service.ListExecutions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
