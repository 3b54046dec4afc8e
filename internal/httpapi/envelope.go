// Package httpapi exposes the game services over a JSON REST API.
// Every response carries the {success, data | error} envelope.
package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Gzeu/cosmic-legends-server/internal/apperrors"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (h *Handler) writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data}); err != nil {
		h.log.Error("encoding response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperrors.CodeOf(err).HTTPStatus())
	if encErr := json.NewEncoder(w).Encode(errorEnvelope{Error: apperrors.MessageOf(err)}); encErr != nil {
		h.log.Error("encoding error response", zap.Error(encErr))
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidArgument("invalid JSON body")
	}
	return nil
}
