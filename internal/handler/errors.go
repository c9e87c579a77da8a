package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"socialhub/internal/apperror"
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps the error kinds of apperror to status codes.
// Anything unclassified is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *apperror.ValidationError

	switch {
	case errors.As(err, &vErr):
		writeSuccess(w, ErrorResponse{Error: "validation failed", Fields: vErr.Fields}, http.StatusBadRequest)
	case errors.Is(err, apperror.ErrUnauthorized):
		WriteError(w, apperror.ErrUnauthorized.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperror.ErrForbidden):
		WriteError(w, apperror.ErrForbidden.Error(), http.StatusForbidden)
	case errors.Is(err, apperror.ErrNotFound):
		WriteError(w, "not found", http.StatusNotFound)
	default:
		log.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

// validationError converts validator output into a ValidationError.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewValidation(apperror.NonFieldErrors, err.Error())
	}

	vErr := &apperror.ValidationError{}
	for _, fe := range fieldErrs {
		vErr.Add(fe.Field(), fieldMessage(fe))
	}
	return vErr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}

func (h *Handlers) validate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := h.Validate.Struct(req); err != nil {
		writeServiceError(w, r, validationError(err))
		return false
	}
	return true
}
