package leave

import (
	"net/http"
	"strings"

	leaveerrors "go-attendance/internal/leave/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	contextutil.GetLogger(c.Request.Context(), h.logger).Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Apply(c *gin.Context) {
	userID := c.Param("userId")
	h.logger.Debug("http apply leave", zap.String("user_id", userID))

	var req ApplyLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http apply leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if _, err := h.service.Apply(c.Request.Context(), userID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Leave request submitted successfully.")
}

func (h *Handler) MyLeaves(c *gin.Context) {
	resp, err := h.service.MyLeaves(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.List(c, http.StatusOK, resp)
}

func (h *Handler) Pending(c *gin.Context) {
	resp, err := h.service.PendingForManager(c.Request.Context(), c.Param("managerId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.List(c, http.StatusOK, resp)
}

// UpdateStatus only lets a decision through; anything but APPROVED or
// REJECTED stops here.
func (h *Handler) UpdateStatus(c *gin.Context) {
	leaveID := c.Param("leaveId")

	var req UpdateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update leave status validation failed", zap.Error(err))
		h.writeServiceError(c, leaveerrors.ErrInvalidStatus)
		return
	}

	if !isDecision(req.Status) {
		h.writeServiceError(c, leaveerrors.ErrInvalidStatus)
		return
	}

	if _, err := h.service.UpdateStatus(c.Request.Context(), leaveID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Leave status updated.")
}

func isDecision(status string) bool {
	s := strings.TrimSpace(status)
	return strings.EqualFold(s, StatusApproved) || strings.EqualFold(s, StatusRejected)
}
