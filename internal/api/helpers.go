package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rankforge/audit-service/internal/entity"
)

const errInternalText = "internal error"

type ResponseError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func SendErr(ctx context.Context, w http.ResponseWriter, code int, err error, msg string) {
	slog.ErrorContext(ctx, "api error", "error", err, "code", code)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err = json.NewEncoder(w).Encode(ResponseError{Message: msg, Error: err.Error()})
	if err != nil {
		slog.ErrorContext(ctx, "api error", "error", err, "code", http.StatusInternalServerError)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		SendErr(ctx, w, http.StatusInternalServerError, err, "")
		return
	}
}

// SendServiceErr maps a service error to its HTTP status. Scope violations on
// writes arrive here already masked as ErrNotFound, so the mapping never has
// to decide between 403 and 404 itself.
func SendServiceErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		SendErr(ctx, w, http.StatusUnprocessableEntity, err, "validation failed")
	case errors.Is(err, entity.ErrActiveRunExists):
		SendErr(ctx, w, http.StatusConflict, err, "client already has an active audit run")
	case errors.Is(err, entity.ErrInvalidTransition):
		SendErr(ctx, w, http.StatusConflict, err, "illegal state transition")
	case errors.Is(err, entity.ErrNotFound):
		SendErr(ctx, w, http.StatusNotFound, err, "not found")
	case errors.Is(err, entity.ErrForbidden):
		SendErr(ctx, w, http.StatusForbidden, err, "insufficient permissions")
	case errors.Is(err, entity.ErrUnresolvedScope):
		SendErr(ctx, w, http.StatusForbidden, err, "caller scope could not be resolved")
	case errors.Is(err, entity.ErrUnauthenticated):
		SendErr(ctx, w, http.StatusUnauthorized, err, "authentication required")
	default:
		SendErr(ctx, w, http.StatusInternalServerError, err, errInternalText)
	}
}
