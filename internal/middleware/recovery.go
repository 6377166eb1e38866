package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"meesho-recon/internal/domain"
	"meesho-recon/pkg/logger"
	"meesho-recon/pkg/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.GetLogger().WithFields(map[string]interface{}{
					"error": err,
					"path":  c.Request.URL.Path,
					"stack": string(debug.Stack()),
				}).Error("Panic recovered")
				response.InternalError(c, "Internal server error", "An unexpected error occurred")
				c.Abort()
			}
		}()
		c.Next()
	}
}

// ErrorHandler answers for handlers that attached an error with c.Error but
// wrote no response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last()
		kind := domain.KindOf(err.Err)
		logger.GetLogger().WithError(err.Err).WithField("kind", kind).Error("Request error")

		switch kind {
		case domain.KindFileTooLarge:
			response.PayloadTooLarge(c, err.Error())
		case domain.KindMissingColumn:
			response.Error(c, http.StatusUnprocessableEntity, string(kind), "Required column missing", err.Error())
		case domain.KindExportUnavailable:
			response.Unavailable(c, string(kind), "Export format unavailable", err.Error())
		default:
			response.InternalError(c, "Request failed", err.Error())
		}
	}
}
