package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/invoicebox/internal/domain/model"
)

const (
	// SessionContextKey is a gin context key for the decoded model.Session.
	SessionContextKey = "session"
	// ViewIDContextKey is a gin context key for the id that keys per-session
	// view state.
	ViewIDContextKey = "viewID"
)

// SessionLoader decodes and clears the browser session.
type SessionLoader interface {
	Load(r *http.Request) (model.Session, string, error)
	Clear(w http.ResponseWriter, r *http.Request) error
}

// LoadSession decodes the session cookie once per request. Undecodable or
// half-populated sessions are cleared and the request continues anonymously.
func LoadSession(loader SessionLoader, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, viewID, err := loader.Load(c.Request)
		if err != nil {
			logger.Warn("discarding invalid session",
				slog.String("request_id", RequestIDFrom(c)),
				slog.String("error", err.Error()),
			)
			if clearErr := loader.Clear(c.Writer, c.Request); clearErr != nil {
				logger.Error("clear session", slog.String("error", clearErr.Error()))
			}
			s, viewID = model.Session{}, ""
		}

		c.Set(SessionContextKey, s)
		c.Set(ViewIDContextKey, viewID)
		c.Next()
	}
}

// CurrentSession returns the session loaded for this request.
func CurrentSession(c *gin.Context) model.Session {
	val, ok := c.Get(SessionContextKey)
	if !ok {
		return model.Session{}
	}
	s, _ := val.(model.Session)
	return s
}

// CurrentViewID returns the view-state id of the loaded session.
func CurrentViewID(c *gin.Context) string {
	return c.GetString(ViewIDContextKey)
}

// GuestOnly sends authenticated users to the dashboard.
func GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionRequired sends anonymous users to the login form.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentSession(c).Authenticated() {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleRequired sends sessions without role to the dashboard.
func RoleRequired(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c).Role() != role {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
