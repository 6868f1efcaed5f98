package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"complaint-desk/internal/model"
	"complaint-desk/pkg/apierror"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()
	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	t.Run("renders wrapped api errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf("change password: %w", apierror.Validation(map[string]string{"new_password": "is required"}))
		writeError(rec, err)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		require.False(t, body.Success)
		require.Equal(t, apierror.CodeValidation, body.Error.Code)
		require.Equal(t, "is required", body.Error.Fields["new_password"])
	})

	t.Run("hides untranslated errors behind a 500", func(t *testing.T) {
		for _, err := range []error{errors.New("connection reset"), model.ErrComplaintNotFound} {
			rec := httptest.NewRecorder()
			writeError(rec, err)

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decodeBody(t, rec)
			require.Equal(t, "INTERNAL_ERROR", body.Error.Code)
			require.NotContains(t, rec.Body.String(), err.Error())
		}
	})
}
