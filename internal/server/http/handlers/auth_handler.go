package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/invoicebox/internal/domain/model"
	"github.com/polkiloo/invoicebox/internal/server/http/dto"
	"github.com/polkiloo/invoicebox/internal/server/http/middleware"
	"github.com/polkiloo/invoicebox/internal/server/http/views"
)

var roles = []model.Role{model.RoleProvider, model.RolePurchaser}

// AuthHandler processes sign-in, sign-up and sign-out.
type AuthHandler struct {
	facade   AuthFacade
	sessions Sessions
	forget   func(viewID string)
	logger   *slog.Logger
}

// NewAuthHandler creates AuthHandler instance. forget drops the view state
// of a session being signed out and may be nil.
func NewAuthHandler(facade AuthFacade, sessions Sessions, forget func(string), logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, sessions: sessions, forget: forget, logger: logger}
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, views.PageLogin, views.LoginPage{Page: basePage(c, "Login", "")})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := dto.DecodeForm(c.Request, &form); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	s, err := h.facade.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		page := views.LoginPage{Page: basePage(c, "Login", ""), Username: form.Username}
		page.Error = failureMessage(err, msgLoginFailed)
		c.HTML(failureStatus(err), views.PageLogin, page)
		return
	}

	h.signIn(c, s)
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, views.PageRegister, views.RegisterPage{
		Page:  basePage(c, "Register", ""),
		Role:  model.RoleProvider,
		Roles: roles,
	})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := dto.DecodeForm(c.Request, &form); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	s, err := h.facade.Register(c.Request.Context(), form.Username, form.Email, form.Password, form.Role)
	if err != nil {
		page := views.RegisterPage{
			Page:     basePage(c, "Register", ""),
			Username: form.Username,
			Email:    form.Email,
			Role:     model.Role(form.Role),
			Roles:    roles,
		}
		page.Error = failureMessage(err, msgRegisterFailed)
		c.HTML(failureStatus(err), views.PageRegister, page)
		return
	}

	h.signIn(c, s)
}

// Logout handles POST /logout. Signing out without a session succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.forget != nil {
		h.forget(middleware.CurrentViewID(c))
	}
	if err := h.sessions.Clear(c.Writer, c.Request); err != nil {
		h.logger.Error("clear session", slog.String("error", err.Error()))
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) signIn(c *gin.Context, s model.Session) {
	if _, err := h.sessions.Save(c.Writer, c.Request, s); err != nil {
		h.logger.Error("save session",
			slog.String("request_id", middleware.RequestIDFrom(c)),
			slog.String("error", err.Error()),
		)
		c.Status(http.StatusInternalServerError)
		return
	}
	h.logger.Info("user signed in",
		slog.String("username", s.User.Username),
		slog.String("role", string(s.Role())),
	)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}
