package handling

import (
	"errors"
	"net/http"
	"techmart_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleError maps the error taxonomy onto exactly one HTTP response.
// Validation errors become 400, auth errors 401 or 403, missing rows 404,
// conflicts 409 and everything else a generic 500 that leaks no internals.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	var validationErr *lib.ValidationError
	if errors.As(err, &validationErr) {
		return gecho.BadRequest(w, gecho.WithMessage(validationErr.Error())).Send()
	}

	var authErr lib.AuthError
	if errors.As(err, &authErr) {
		if authErr == lib.ErrUnauthorizedRole {
			return gecho.Forbidden(w, gecho.WithMessage(string(authErr))).Send()
		}
		return gecho.Unauthorized(w, gecho.WithMessage(string(authErr))).Send()
	}

	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	if lib.IsNotFound(err) {
		return gecho.NotFound(w, gecho.WithMessage(msg)).Send()
	}
	if lib.IsUniqueViolation(err) || errors.Is(err, lib.ErrConflict) {
		return gecho.Conflict(w, gecho.WithMessage(msg)).Send()
	}

	return gecho.InternalServerError(w).Send()
}
