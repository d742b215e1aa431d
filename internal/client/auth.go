package client

import (
	"context"
	"errors"

	"github.com/nspraveen/tripnest/internal/domain"
)

type Auth struct {
	rest
}

func NewAuth(baseURL string, doer HTTPDoer) *Auth {
	return &Auth{rest: newREST(baseURL, doer)}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginAdmin probes the admin login path. A rejection is not an error:
// the session manager falls back to the user path.
func (a *Auth) LoginAdmin(ctx context.Context, email, password string) (bool, error) {
	var res struct {
		Status string `json:"status"`
	}
	err := a.postJSON(ctx, "/user/admin/login", credentials{Email: email, Password: password}, &res)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrRejected) || errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return res.Status == "success", nil
}

func (a *Auth) LoginUser(ctx context.Context, email, password string) (*domain.Principal, string, error) {
	var res struct {
		User struct {
			Name     string `json:"name"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
		Token string `json:"token"`
	}
	if err := a.postJSON(ctx, "/users/login", credentials{Email: email, Password: password}, &res); err != nil {
		return nil, "", err
	}

	name := res.User.Name
	if name == "" {
		name = res.User.Username
	}
	principalEmail := res.User.Email
	if principalEmail == "" {
		principalEmail = email
	}
	return &domain.Principal{Email: principalEmail, Name: name, Role: domain.RoleUser}, res.Token, nil
}

type RegisterInput struct {
	Name          string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Address       string `json:"address,omitempty"`
}

func (a *Auth) Register(ctx context.Context, in RegisterInput) error {
	return a.postJSON(ctx, "/users/register", in, nil)
}
