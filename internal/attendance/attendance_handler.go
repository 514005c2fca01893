package attendance

import (
	"fmt"
	"net/http"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	swipeFailedMsg  = "Invalid swipe type or user not found."
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	contextutil.GetLogger(c.Request.Context(), h.logger).Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Swipe answers every failure with 400, unknown users included.
func (h *Handler) Swipe(c *gin.Context) {
	userID := c.Param("userId")

	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http swipe validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, swipeFailedMsg, err.Error())
		return
	}

	if _, err := h.service.Swipe(c.Request.Context(), userID, req.Type); err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("http swipe failed",
			zap.String("user_id", userID),
			zap.String("code", httpErr.Code),
			zap.String("message", httpErr.Message),
		)
		response.Error(c, http.StatusBadRequest, httpErr.Code, swipeFailedMsg, httpErr.Message)
		return
	}

	response.Message(c, http.StatusOK, "Swipe successful.")
}

func (h *Handler) TotalHours(c *gin.Context) {
	resp, err := h.service.TotalHours(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	// Clients read the hours straight off data.
	response.Success(c, http.StatusOK, resp.TotalHours, nil)
}

func (h *Handler) History(c *gin.Context) {
	resp, err := h.service.History(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.List(c, http.StatusOK, resp)
}

func (h *Handler) Export(c *gin.Context) {
	userID := c.Param("userId")

	data, err := h.service.ExportXLSX(c.Request.Context(), userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="attendance-%s.xlsx"`, userID))
	c.Data(http.StatusOK, xlsxContentType, data)
}
