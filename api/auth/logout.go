package auth

import (
	"net/http"
	"techmart_server/api/middleware"
	"techmart_server/handling"
	"techmart_server/lib"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
		return
	}

	if err := arm.authService.Logout(r.Context(), session); err != nil {
		handling.HandleError(err, "Logout failed", arm.logger, w)
		return
	}

	lib.ClearCookie(lib.SessionCookieName, w)

	gecho.Success(w,
		gecho.WithData(structs.LogoutResponse{Message: "Logged out successfully"}),
		gecho.Send(),
	)
}
