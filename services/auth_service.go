package services

import (
	"context"
	"techmart_server/store"
	"techmart_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// AuthService fronts the auth backend for the storefront endpoints and
// hangs account side effects (welcome mail) off the sign-up path.
type AuthService struct {
	logger   *gecho.Logger
	auth     store.Auth
	profiles store.ProfileStore
	email    *EmailService
}

func NewAuthService(logger *gecho.Logger, client *store.Client, email *EmailService) *AuthService {
	return &AuthService{
		logger:   logger,
		auth:     client.Auth,
		profiles: client.Profiles,
		email:    email,
	}
}

func (as *AuthService) Login(ctx context.Context, email, password string) (*store.Session, error) {
	return as.auth.SignIn(ctx, email, password)
}

// Register creates the account and signs it in. The welcome mail is
// dispatched after the session exists and cannot fail the registration.
func (as *AuthService) Register(ctx context.Context, email, password, fullName string) (*store.Session, error) {
	session, err := as.auth.SignUp(ctx, email, password, fullName)
	if err != nil {
		return nil, err
	}

	if as.email != nil {
		as.email.SendWelcomeEmail(&tables.Profile{
			Id:       session.UserID,
			Email:    email,
			FullName: fullName,
		})
	}

	return session, nil
}

func (as *AuthService) Logout(ctx context.Context, session *store.Session) error {
	return as.auth.SignOut(ctx, session)
}

// Session restores a session from its token.
func (as *AuthService) Session(ctx context.Context, token string) (*store.Session, error) {
	return as.auth.CurrentSession(ctx, token)
}

// Profile returns the account row behind a session.
func (as *AuthService) Profile(ctx context.Context, session *store.Session) (*tables.Profile, error) {
	return as.profiles.SelectByID(ctx, session.UserID)
}
