package session

import (
	"context"
	"fmt"

	"github.com/todolist/todo-client/internal/domain"
)

// Authenticator signs users in and up against the auth API.
// Fields are ordered to minimize memory padding.
type Authenticator struct {
	store  *Store
	api    domain.AuthAPI
	creds  domain.CredentialStore
	logger domain.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(store *Store, api domain.AuthAPI, creds domain.CredentialStore, logger domain.Logger) *Authenticator {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Authenticator{
		store:  store,
		api:    api,
		creds:  creds,
		logger: logger,
	}
}

// Login exchanges the credentials for a token and persists it with the username.
// On failure the session records LoginFailedMessage and the error is returned
// so the caller can keep its form populated.
func (a *Authenticator) Login(ctx context.Context, username, password string) error {
	a.store.Dispatch(LoginStarted{})

	tok, err := a.api.Login(ctx, domain.LoginRequest{Username: username, Password: password})
	if err != nil {
		a.logger.Warn("session", fmt.Sprintf("login %s: %v", username, err))
		a.store.Dispatch(LoginFailed{Message: LoginFailedMessage})
		return fmt.Errorf("login: %w", err)
	}

	if err := a.creds.Save(domain.Credentials{Token: tok.AccessToken, Username: username}); err != nil {
		a.logger.Error("session", fmt.Sprintf("save credentials: %v", err))
		a.store.Dispatch(LoginFailed{Message: LoginFailedMessage})
		return fmt.Errorf("save credentials: %w", err)
	}

	a.store.Dispatch(LoginSucceeded{User: domain.User{Username: username}})
	a.logger.Info("session", "logged in as "+username)
	return nil
}

// Register creates the account and then signs in with the same credentials.
// Registration alone never signs the user in. Any failure, including the
// follow-up login, leaves RegisterFailedMessage as the session error.
func (a *Authenticator) Register(ctx context.Context, username, password, email string) error {
	a.store.Dispatch(LoginStarted{})

	_, err := a.api.Register(ctx, domain.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		a.logger.Warn("session", fmt.Sprintf("register %s: %v", username, err))
		a.store.Dispatch(LoginFailed{Message: RegisterFailedMessage})
		return fmt.Errorf("register: %w", err)
	}

	a.logger.Info("session", "registered "+username)
	if err := a.Login(ctx, username, password); err != nil {
		a.store.Dispatch(LoginFailed{Message: RegisterFailedMessage})
		return err
	}
	return nil
}
