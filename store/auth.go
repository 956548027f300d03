package store

import (
	"context"
	"errors"
	"techmart_server/config"
	"techmart_server/database"
	"techmart_server/lib"
	"techmart_server/structs"
	"techmart_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// remoteAuth authenticates against the profiles table and issues signed
// session tokens. Revocation state lives in the RevocationList so a token
// stays dead across restarts for as long as it could still be replayed.
type remoteAuth struct {
	db       *database.DB
	revoked  RevocationList
	notifier sessionNotifier
}

func NewRemoteAuth(db *database.DB, revoked RevocationList) Auth {
	return &remoteAuth{db: db, revoked: revoked}
}

func (a *remoteAuth) SignIn(ctx context.Context, email, password string) (*Session, error) {
	profile, err := a.profileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		// Burn comparable time so a missing account is not distinguishable
		// from a wrong password.
		_, _ = lib.HashPassword(password)
		return nil, lib.ErrInvalidCredentials
	}

	match, err := lib.VerifyPassword(password, profile.PasswordHash)
	if err != nil || !match {
		return nil, lib.ErrInvalidCredentials
	}

	session, err := a.mintSession(profile)
	if err != nil {
		return nil, err
	}

	a.touchLastLogin(profile.Id)
	a.notifier.notify(SessionEvent{Type: EventSignedIn, Session: session})
	return session, nil
}

func (a *remoteAuth) SignUp(ctx context.Context, email, password, fullName string) (*Session, error) {
	hash, err := lib.HashPassword(password)
	if err != nil {
		return nil, err
	}

	profile := &tables.Profile{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         "user",
		LastLogin:    time.Now(),
	}

	inserted, err := database.Query[tables.Profile](a.db).
		Timeout(queryTimeout).
		Insert(ctx, profile)
	if err != nil {
		return nil, lib.NewStoreError("insert", "profiles", err)
	}

	session, err := a.mintSession(inserted)
	if err != nil {
		return nil, err
	}

	a.notifier.notify(SessionEvent{Type: EventSignedIn, Session: session})
	return session, nil
}

func (a *remoteAuth) SignOut(ctx context.Context, session *Session) error {
	if session == nil {
		return lib.ErrNoSession
	}

	if err := a.revoked.RevokeSession(session.SessionID, session.ExpiresAt); err != nil {
		return err
	}

	a.notifier.notify(SessionEvent{Type: EventSignedOut, Session: session})
	return nil
}

func (a *remoteAuth) CurrentSession(ctx context.Context, token string) (*Session, error) {
	cfg := config.GetConfig()

	claims, err := lib.ParseToken(token, cfg.Auth.SessionTokenSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, lib.ErrExpiredToken
		}
		return nil, lib.ErrInvalidToken
	}

	if time.Now().After(claims.Exp) {
		return nil, lib.ErrExpiredToken
	}

	revoked, err := a.revoked.IsSessionRevoked(claims.Jti)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, lib.ErrRevokedToken
	}

	return &Session{
		UserID:    claims.Sub,
		Email:     claims.Email,
		SessionID: claims.Jti,
		Token:     token,
		ExpiresAt: claims.Exp,
	}, nil
}

func (a *remoteAuth) OnSessionChange(fn func(SessionEvent)) *Subscription {
	return a.notifier.subscribe(fn)
}

func (a *remoteAuth) profileByEmail(ctx context.Context, email string) (*tables.Profile, error) {
	profile, err := database.Query[tables.Profile](a.db).
		Timeout(queryTimeout).
		Where("email", email).
		First(ctx)
	if err != nil {
		return nil, lib.NewStoreError("select", "profiles", err)
	}
	return profile, nil
}

func (a *remoteAuth) mintSession(profile *tables.Profile) (*Session, error) {
	cfg := config.GetConfig()

	now := time.Now()
	claims := &structs.SessionClaims{
		Sub:   profile.Id,
		Email: profile.Email,
		Iat:   now,
		Exp:   now.Add(cfg.Auth.SessionTokenExpiry),
		Jti:   uuid.New(),
	}

	token, err := lib.SignSessionToken(claims, cfg.Auth.SessionTokenSecret)
	if err != nil {
		return nil, err
	}

	return &Session{
		UserID:    claims.Sub,
		Email:     claims.Email,
		SessionID: claims.Jti,
		Token:     token,
		ExpiresAt: claims.Exp,
	}, nil
}

// touchLastLogin is fire and forget; a failed bookkeeping write must not
// fail the sign-in.
func (a *remoteAuth) touchLastLogin(userID uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		_, err := database.Query[tables.Profile](a.db).
			Where("id", userID).
			Update(ctx, map[string]any{"last_login": time.Now()})
		if err != nil {
			config.GetLogger().Warn("Failed to update last_login",
				gecho.Field("error", err),
				gecho.Field("user_id", userID.String()))
		}
	}()
}
