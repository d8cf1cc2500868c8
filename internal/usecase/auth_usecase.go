package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"store_admin/internal/clients"
	"store_admin/internal/session"
)

// Auth handles login, registration and logout. The client stores the bearer
// token on successful login; logout simply clears the session store.
type Auth struct {
	client clients.APIClient
	store  *session.Store
	log    *logrus.Logger
}

func NewAuth(client clients.APIClient, store *session.Store, logger *logrus.Logger) *Auth {
	return &Auth{client: client, store: store, log: logger}
}

func (a *Auth) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}
	return a.client.Login(ctx, email, password)
}

func (a *Auth) Register(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}
	return a.client.Register(ctx, email, password)
}

func (a *Auth) Logout() error {
	a.log.Info("Auth: Logging out, clearing stored credential")
	return a.store.Clear()
}

// LoggedIn reports whether a credential is currently stored. It says nothing
// about whether the backend still accepts it.
func (a *Auth) LoggedIn() bool {
	_, err := a.store.Token()
	return err == nil
}
