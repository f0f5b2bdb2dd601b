package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteJSON(rec, http.StatusCreated, map[string]int64{"id": 1})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"id": 1}`, rec.Body.String())
}

func TestGeneralError(t *testing.T) {
	resp := GeneralError(errors.New("boom"))
	require.Equal(t, StatusError, resp.Status)
	require.Equal(t, "boom", resp.Error)
}

func TestValidationErrorMessages(t *testing.T) {
	type payload struct {
		Title string  `validate:"required"`
		Email string  `validate:"required,email"`
		Price float64 `validate:"required,gt=0"`
	}

	err := validator.New().Struct(payload{Email: "not-an-email", Price: -1})
	require.Error(t, err)

	var validateErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validateErrs)

	resp := ValidationError(validateErrs)
	require.Equal(t, StatusError, resp.Status)
	require.Contains(t, resp.Error, "field Title is required")
	require.Contains(t, resp.Error, "field Email must be a valid email address")
	require.Contains(t, resp.Error, "field Price must be greater than 0")
}
