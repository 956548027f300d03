package auth

import (
	"errors"
	"net/http"
	"techmart_server/lib"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
)

// HandleAdminLogin is the dashboard entry point. Valid credentials without
// the admin role are rejected with 403 and the freshly created session is
// torn down again before the response goes out.
func (arm *AuthRoutesManager) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SignInRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract admin login body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	if err := lib.ValidateStruct(body); err != nil {
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	session, err := arm.adminService.AdminLogin(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, lib.ErrUnauthorizedRole) {
			arm.logger.Warn("Admin login without admin role", gecho.Field("email", body.Email))
			gecho.Forbidden(w, gecho.WithMessage("Unauthorized: Admin access required"), gecho.Send())
			return
		}
		arm.logger.Warn("Admin login failed", gecho.Field("error", err), gecho.Field("email", body.Email))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	lib.SetCookie(lib.SessionCookieName, session.Token, session.ExpiresAt, w)

	gecho.Success(w,
		gecho.WithMessage("Admin login successful"),
		gecho.WithData(session),
		gecho.Send(),
	)
}
