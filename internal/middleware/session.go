package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"meesho-recon/internal/domain"
	"meesho-recon/internal/service"
	"meesho-recon/internal/session"
	"meesho-recon/pkg/logger"
	"meesho-recon/pkg/response"
)

const (
	CookieName   = "meesho_recon"
	SessionIDKey = "session_id"
	contextKey   = "recon_session"
)

// Sessions installs the signed cookie store that carries the session id.
func Sessions(secret string, maxAge int) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		MaxAge:   maxAge,
		Secure:   gin.Mode() == gin.ReleaseMode,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
	return sessions.Sessions(CookieName, store)
}

// RequireSession resolves the cookie's session id to a live session and
// aborts with 404 when the cookie is absent or the session was evicted.
func RequireSession(svc service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := sessions.Default(c).Get(SessionIDKey).(string)
		if id == "" {
			response.NotFound(c, "No active session, create one with POST /api/v1/sessions")
			c.Abort()
			return
		}

		sess, err := svc.Get(id)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				response.NotFound(c, "Session expired or not found")
			} else {
				logger.GetLogger().WithError(err).WithField("session_id", id).Error("Failed to load session")
				response.InternalError(c, "Failed to load session", err.Error())
			}
			c.Abort()
			return
		}

		c.Set(contextKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session loaded by RequireSession.
func CurrentSession(c *gin.Context) *session.Context {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Context)
	return sess
}
