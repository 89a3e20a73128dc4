package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atelier/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJSONRequest(t *testing.T, body any) *http.Request {
	t.Helper()

	reqBody, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Feature: storefront-api, Property: Missing address fields are reported by JSON name
func TestProperty_MissingAddressFieldsAreReported(t *testing.T) {
	properties := gopter.NewProperties(nil)

	full := map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"address":   "12 St James's Square",
		"city":      "London",
		"zipCode":   "SW1Y 4JH",
		"country":   "United Kingdom",
	}
	names := []string{"firstName", "lastName", "address", "city", "zipCode", "country"}

	properties.Property("every omitted field and only those are reported", prop.ForAll(
		func(omit []bool) bool {
			body := map[string]string{}
			want := map[string]bool{}
			for i, name := range names {
				if omit[i] {
					want[name] = true
					continue
				}
				body[name] = full[name]
			}

			reqBody, _ := json.Marshal(body)
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(reqBody))

			var address domain.ShippingAddress
			err := DecodeAndValidate(req, &address)

			if len(want) == 0 {
				return err == nil
			}

			fields := FormatValidationErrors(err)
			if len(fields) != len(want) {
				return false
			}
			for _, f := range fields {
				if !want[f.Field] || f.Message != "This field is required" {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(len(names), gen.Bool()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDecodeAndValidate_InvalidEmail(t *testing.T) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	err := DecodeAndValidate(newJSONRequest(t, map[string]string{"email": "not-an-email"}), &req)
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, domain.FieldError{Field: "email", Message: "Invalid email format"}, fields[0])
}

func TestRespondWithDecodeError(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("{"))
		var address domain.ShippingAddress
		err := DecodeAndValidate(req, &address)

		w := httptest.NewRecorder()
		RespondWithDecodeError(w, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid request body")
	})

	t.Run("validation failure", func(t *testing.T) {
		var address domain.ShippingAddress
		err := DecodeAndValidate(newJSONRequest(t, map[string]string{"firstName": "Ada"}), &address)

		w := httptest.NewRecorder()
		RespondWithDecodeError(w, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_errors")
		assert.Contains(t, w.Body.String(), "zipCode")
	})
}
