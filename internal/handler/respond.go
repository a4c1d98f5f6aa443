package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Rahik-516/Noor-Web/internal/model"
	"github.com/Rahik-516/Noor-Web/internal/repository"
	"github.com/Rahik-516/Noor-Web/internal/service"
	"github.com/Rahik-516/Noor-Web/internal/validation"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to write json response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Code: code, Message: message})
}

// writeServiceError maps a service or repository error to the JSON envelope.
// Unexpected errors are logged and reported as internal without details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var verr *validation.Error

	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, verr.Error())
	case errors.Is(err, validation.ErrInvalid):
		writeError(w, http.StatusBadRequest, model.ErrorCodeBadRequest, err.Error())
	case errors.Is(err, repository.ErrGoalSettingNotFound):
		writeError(w, http.StatusNotFound, model.ErrorCodeNotFound, "goal not found")
	case errors.Is(err, repository.ErrDuplicateGoalTitle):
		writeError(w, http.StatusConflict, model.ErrorCodeConflict, "a goal with this title already exists")
	case errors.Is(err, service.ErrInvalidSignature):
		writeError(w, http.StatusUnauthorized, model.ErrorCodeUnauthorized, "invalid webhook signature")
	default:
		slog.Error("failed to "+action, "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, model.ErrorCodeInternal, "failed to "+action)
	}
}

// decodeJSON reads a bounded JSON body into v. An empty body is an error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() {
		closeErr := r.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close request body", "error", closeErr)
		}
	}()

	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return validation.Invalid("body", "is required")
	}
	if err != nil {
		return validation.Invalid("body", "is not valid JSON")
	}
	return nil
}
