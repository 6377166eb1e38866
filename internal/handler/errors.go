package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/service"
	"meesho-recon/pkg/logger"
	"meesho-recon/pkg/response"
)

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, message string, err error) {
	var ingest *service.IngestFailedError
	var missing *domain.MissingFieldError

	switch {
	case errors.As(err, &ingest) && ingest.TooLarge():
		response.PayloadTooLarge(c, err.Error())
	case errors.Is(err, domain.ErrSessionNotFound):
		response.NotFound(c, "Session not found")
	case errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, domain.ErrSKUGroupNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrExportUnavailable):
		response.Unavailable(c, string(domain.KindExportUnavailable), message, err.Error())
	case errors.As(err, &missing):
		response.Error(c, http.StatusUnprocessableEntity, string(domain.KindMissingColumn), message, err.Error())
	case errors.As(err, &ingest),
		errors.Is(err, domain.ErrNoData),
		errors.Is(err, domain.ErrSnapshotIncomplete),
		errors.Is(err, domain.ErrUnsupportedFormat):
		response.BadRequest(c, message, err.Error())
	default:
		logger.GetLogger().WithError(err).Error(message)
		response.InternalError(c, message, err.Error())
	}
}
