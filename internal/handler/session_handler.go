package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"meesho-recon/internal/middleware"
	"meesho-recon/internal/service"
	"meesho-recon/pkg/logger"
	"meesho-recon/pkg/response"
)

type SessionHandler struct {
	service service.SessionService
}

func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// CreateSession godoc
// @Summary Start a session
// @Description Create an empty analysis session and bind it to the session cookie. Any previous session of the cookie is discarded.
// @Tags sessions
// @Produce json
// @Success 201 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	store := sessions.Default(c)
	if previous, ok := store.Get(middleware.SessionIDKey).(string); ok && previous != "" {
		_ = h.service.Delete(previous)
	}

	sess, err := h.service.Create()
	if err != nil {
		respondError(c, "Failed to create session", err)
		return
	}

	store.Set(middleware.SessionIDKey, sess.ID)
	if err := store.Save(); err != nil {
		logger.GetLogger().WithError(err).Error("Failed to save session cookie")
		response.InternalError(c, "Failed to save session cookie", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Session created successfully", sess.State())
}

// GetSession godoc
// @Summary Get the current session
// @Description Return the uploads, SKU groups, filter and last reconciliation run of the current session
// @Tags sessions
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/sessions/current [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	response.Success(c, http.StatusOK, "Session retrieved successfully", sess.State())
}

// DeleteSession godoc
// @Summary Clear the current session
// @Description Drop every upload, group, filter and report of the current session
// @Tags sessions
// @Produce json
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/sessions/current [delete]
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.service.Delete(sess.ID); err != nil {
		respondError(c, "Failed to delete session", err)
		return
	}

	store := sessions.Default(c)
	store.Delete(middleware.SessionIDKey)
	if err := store.Save(); err != nil {
		logger.GetLogger().WithError(err).Warn("Failed to clear session cookie")
	}

	response.Success(c, http.StatusOK, "Session cleared successfully", nil)
}
