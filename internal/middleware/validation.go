package middleware

import (
	"encoding/json"
	"net/http"

	"atelier/internal/domain"
)

// Validator instance; reports fields by their JSON names
var validate = domain.NewValidator()

// ValidateRequest validates the request body against a struct with validation tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeAndValidate decodes JSON request body and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// FormatValidationErrors converts validator errors to field errors. Decode
// errors yield nil.
func FormatValidationErrors(err error) []domain.FieldError {
	return domain.FieldErrors(err)
}

// RespondWithDecodeError answers a failed DecodeAndValidate: field errors
// when validation failed, a plain 400 when the body was not JSON.
func RespondWithDecodeError(w http.ResponseWriter, err error) {
	if fields := FormatValidationErrors(err); len(fields) > 0 {
		RespondWithValidationErrors(w, "validation failed", fields)
		return
	}
	RespondWithError(w, http.StatusBadRequest, "invalid request body")
}
