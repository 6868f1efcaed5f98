package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"complaint-desk/internal/model"
	"complaint-desk/pkg/apierror"
)

func jsonEncode(w http.ResponseWriter, value any) error {
	return json.NewEncoder(w).Encode(value)
}

func writeJSONError(w http.ResponseWriter, status int, body *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.APIResponse{Success: false, Error: body})
}

// writeAPIError renders err when it is an *apierror.APIError and a generic
// 500 otherwise.
func writeAPIError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if !errors.As(err, &apiErr) {
		slog.Error("unhandled middleware error", "error", err.Error())
		writeJSONError(w, http.StatusInternalServerError, &model.APIError{
			Code:    "INTERNAL_ERROR",
			Message: "Unexpected server error",
		})
		return
	}

	writeJSONError(w, apiErr.HTTPStatus, &model.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
		Fields:  apiErr.Fields,
	})
}
