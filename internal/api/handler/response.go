package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"customer-directory/internal/api/handler/dto"
	"customer-directory/internal/pkg/apperrors"
)

const internalErrorMessage = "Internal server error"

// decodeJSON tolerates unknown fields; clients may send extra keys.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return apperrors.NewValidationError("body", "Request body is required")
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidationError("body", "Invalid request body: "+err.Error())
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"message":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrAlreadyExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"message": ...}. AppError messages are client
// facing; anything unclassified is reported as a generic 500.
func respondError(w http.ResponseWriter, err error) {
	status, message, field := statusFor(err), internalErrorMessage, ""
	var appErr *apperrors.AppError
	var validationError *apperrors.ValidationError

	switch {
	case status == http.StatusInternalServerError:
		slog.Default().Error("Unhandled internal error", "error", err)
	case errors.As(err, &appErr):
		message = appErr.Message
	case errors.As(err, &validationError):
		message, field = validationError.Message, validationError.Field
	default:
		message = err.Error()
	}

	respondJSON(w, status, dto.ErrorResponse{Message: message, Field: field})
}
