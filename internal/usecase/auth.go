package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/polkiloo/invoicebox/internal/adapter/invoiceapi"
	domainErrors "github.com/polkiloo/invoicebox/internal/domain/errors"
	"github.com/polkiloo/invoicebox/internal/domain/model"
)

// AuthUseCase exchanges credentials for API sessions.
type AuthUseCase struct {
	api invoiceapi.Client
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(api invoiceapi.Client) *AuthUseCase {
	return &AuthUseCase{api: api}
}

// Login validates the form locally and authenticates against the API.
func (u *AuthUseCase) Login(ctx context.Context, username, password string) (model.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.Session{}, domainErrors.ErrRequiredField
	}

	res, err := u.api.Login(ctx, invoiceapi.Credentials{Username: username, Password: password})
	if err != nil {
		return model.Session{}, err
	}
	return sessionFromAuth(username, res)
}

// Register creates an account. An empty role defaults to provider.
func (u *AuthUseCase) Register(ctx context.Context, username, email, password, role string) (model.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return model.Session{}, domainErrors.ErrRequiredField
	}

	parsedRole := model.RoleProvider
	if strings.TrimSpace(role) != "" {
		var err error
		if parsedRole, err = model.ParseRole(role); err != nil {
			return model.Session{}, err
		}
	}

	res, err := u.api.Register(ctx, invoiceapi.Registration{
		Username: username,
		Email:    email,
		Password: password,
		Role:     parsedRole,
	})
	if err != nil {
		return model.Session{}, err
	}
	return sessionFromAuth(username, res)
}

func sessionFromAuth(username string, res *invoiceapi.AuthResult) (model.Session, error) {
	if res == nil {
		return model.Session{}, domainErrors.ErrInvalidSession
	}
	role, err := model.ParseRole(string(res.Role))
	if err != nil {
		return model.Session{}, fmt.Errorf("api returned role %q: %w", res.Role, domainErrors.ErrInvalidSession)
	}
	return model.NewSession(res.AccessToken, &model.User{
		ID:       res.UserID,
		Username: username,
		Role:     role,
	})
}
