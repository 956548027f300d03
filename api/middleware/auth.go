package middleware

import (
	"context"
	"net/http"
	"techmart_server/lib"
	"techmart_server/store"

	"github.com/MonkyMars/gecho"
)

type contextKey string

const SessionContextKey contextKey = "session"

// RequireSession restores the session behind the request cookie and puts it
// on the request context. Requests without a live session get 401; expired
// and revoked tokens are indistinguishable from missing ones to the caller.
func (mw *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := lib.ExtractSessionToken(r)
		if err != nil {
			gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
			return
		}

		session, err := mw.auth.CurrentSession(r.Context(), token)
		if err != nil {
			mw.logger.Debug("Session restore rejected", gecho.Field("error", err))
			lib.ClearCookie(lib.SessionCookieName, w)
			gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext extracts the session placed by RequireSession.
func SessionFromContext(ctx context.Context) (*store.Session, bool) {
	session, ok := ctx.Value(SessionContextKey).(*store.Session)
	return session, ok
}
