package auth

import (
	"net/http"
	"techmart_server/api/middleware"
	"techmart_server/handling"

	"github.com/MonkyMars/gecho"
)

// HandleMe returns the account row behind the current session.
func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	profile, err := arm.authService.Profile(r.Context(), session)
	if err != nil {
		handling.HandleError(err, "Failed to load profile", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(profile),
		gecho.Send(),
	)
}
