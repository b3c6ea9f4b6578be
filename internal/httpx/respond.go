// Package httpx holds the response helpers shared by all handlers. Error
// translation lives here and in apperrors.HTTPStatus; services never pick
// HTTP status codes themselves.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linechat/backend/pkg/apperrors"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a service failure into an HTTP response. Typed
// AppErrors keep their message and code; anything else becomes a generic 500
// so internal detail never reaches the wire.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		WriteJSON(w, apperrors.HTTPStatus(appErr.Code), map[string]string{
			"error": appErr.Message,
			"code":  string(appErr.Code),
		})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal error",
		"code":  string(apperrors.CodeInternal),
	})
}
