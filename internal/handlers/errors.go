package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"kinderpost/internal/service"
	"kinderpost/internal/validation"
)

// writeServiceError maps a service-layer error to an HTTP response.
// Validation problems name the offending field; everything unexpected is
// logged and collapsed into a plain 500 so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	var fieldErr *validation.FieldError
	switch {
	case errors.As(err, &fieldErr):
		ErrorResponse(w, http.StatusBadRequest, fieldErr.Error())

	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrUserNotFound):
		ErrorResponse(w, http.StatusNotFound, "not found")

	case errors.Is(err, service.ErrAccessDenied):
		ErrorResponse(w, http.StatusForbidden, "access denied")

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidPin):
		ErrorResponse(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAdminTaken),
		errors.Is(err, service.ErrAlreadyAffiliated),
		errors.Is(err, service.ErrAlreadyCheckedIn):
		ErrorResponse(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrNotCheckedIn),
		errors.Is(err, service.ErrInvalidSleepWindow):
		ErrorResponse(w, http.StatusPreconditionFailed, err.Error())

	case errors.Is(err, service.ErrKindergartenMismatch),
		errors.Is(err, service.ErrWrongRole),
		errors.Is(err, service.ErrPinNotSet),
		errors.Is(err, service.ErrInvalidAppetite),
		errors.Is(err, service.ErrInvalidMood),
		errors.Is(err, service.ErrUnknownModel),
		errors.Is(err, service.ErrUnknownInterval),
		errors.Is(err, service.ErrUnknownRange),
		errors.Is(err, service.ErrEmptyRange):
		ErrorResponse(w, http.StatusBadRequest, err.Error())

	default:
		slog.Error("internal error", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "internal error")
	}
}
