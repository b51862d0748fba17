package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kinderpost/internal/service"
	"kinderpost/internal/validation"
)

func TestWriteServiceErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"field error", &validation.FieldError{Field: "email", Message: "invalid"}, http.StatusBadRequest},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound},
		{"access denied", service.ErrAccessDenied, http.StatusForbidden},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad pin", service.ErrInvalidPin, http.StatusUnauthorized},
		{"email taken", service.ErrEmailTaken, http.StatusConflict},
		{"admin taken", service.ErrAdminTaken, http.StatusConflict},
		{"double check-in", service.ErrAlreadyCheckedIn, http.StatusConflict},
		{"not checked in", service.ErrNotCheckedIn, http.StatusPreconditionFailed},
		{"inverted nap", service.ErrInvalidSleepWindow, http.StatusPreconditionFailed},
		{"kindergarten mismatch", service.ErrKindergartenMismatch, http.StatusBadRequest},
		{"wrong role", service.ErrWrongRole, http.StatusBadRequest},
		{"unknown stats model", service.ErrUnknownModel, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			writeServiceError(recorder, tt.err)

			if recorder.Code != tt.want {
				t.Fatalf("status = %d, want %d", recorder.Code, tt.want)
			}

			var body errorBody
			if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body.Message == "" {
				t.Error("error body has no message")
			}
		})
	}
}

func TestWriteServiceErrorHidesInternals(t *testing.T) {
	recorder := httptest.NewRecorder()
	writeServiceError(recorder, errors.New("pq: relation \"users\" does not exist"))

	var body errorBody
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body.Message != "internal error" {
		t.Errorf("message = %q, want the internals collapsed", body.Message)
	}
}

func TestWrappedErrorsStillMap(t *testing.T) {
	recorder := httptest.NewRecorder()
	wrapped := errors.Join(errors.New("context"), service.ErrNotCheckedIn)
	writeServiceError(recorder, wrapped)

	if recorder.Code != http.StatusPreconditionFailed {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusPreconditionFailed)
	}
}
