package auth

import (
	"net/http"
	"techmart_server/lib"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SignInRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract login body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	if err := lib.ValidateStruct(body); err != nil {
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	session, err := arm.authService.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		arm.logger.Warn("Login failed", gecho.Field("error", err), gecho.Field("email", body.Email))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	lib.SetCookie(lib.SessionCookieName, session.Token, session.ExpiresAt, w)

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(session),
		gecho.Send(),
	)
}
