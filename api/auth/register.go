package auth

import (
	"net/http"
	"techmart_server/handling"
	"techmart_server/lib"
	"techmart_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.SignUpRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract register body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your registration information and try again"), gecho.Send())
		return
	}

	if err := lib.ValidateStruct(body); err != nil {
		gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		return
	}

	session, err := arm.authService.Register(r.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			gecho.Conflict(w, gecho.WithMessage("An account with this email already exists"), gecho.Send())
			return
		}
		handling.HandleError(err, "Registration failed", arm.logger, w)
		return
	}

	lib.SetCookie(lib.SessionCookieName, session.Token, session.ExpiresAt, w)

	gecho.Success(w,
		gecho.WithMessage("Registration successful"),
		gecho.WithData(session),
		gecho.Send(),
	)
}
