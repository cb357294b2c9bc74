package attendance

import (
	"net/http"
	"strconv"
	"time"

	attendanceerrors "go-personnel/internal/attendance/errors"
	"go-personnel/internal/shared/apperror"
	"go-personnel/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
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
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetDurations serves the entry/exit duration report. begin_date and end_date
// are YYYY-MM-DD; the range is half-open. user_name narrows to one user.
func (h *Handler) GetDurations(c *gin.Context) {
	beginDate, err := time.Parse("2006-01-02", c.Query("begin_date"))
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
		return
	}
	userName := c.Query("user_name")

	resp, err := h.service.ComputeEntryExitDurations(c.Request.Context(), beginDate, endDate, userName)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetMyEvents lists the caller's own attendance intervals, newest first.
func (h *Handler) GetMyEvents(c *gin.Context) {
	personnelID := c.GetString("user_id")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	resp, total, err := h.service.GetEventsForPersonnel(c.Request.Context(), personnelID, page, pageSize)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}
