package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chem.app/api/common/id"
	"chem.app/api/internal/service"
)

var statusByKind = map[service.Kind]int{
	service.KindValidation:   http.StatusBadRequest,
	service.KindNotFound:     http.StatusNotFound,
	service.KindConflict:     http.StatusConflict,
	service.KindUnauthorized: http.StatusUnauthorized,
	service.KindInternal:     http.StatusInternalServerError,
}

// respondError writes err as {"error": message}. Internal causes are logged
// and never shown to the client.
func respondError(c *gin.Context, err error) {
	var e *service.Error
	if !errors.As(err, &e) {
		e = service.Internal(err)
	}

	status := e.Status
	if status == 0 {
		status = statusByKind[e.Kind]
	}
	if status == 0 {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "error", err)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": e.Message})
}

// pathID parses a snowflake path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := id.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return v, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		slog.WarnContext(c.Request.Context(), "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}
