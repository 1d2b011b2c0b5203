// Package helpers agrupa utilidades compartidas por los controllers HTTP.
package helpers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dropDatabas3/janus/internal/http/httperrors"
)

const (
	maxBodySize     = 1 << 20 // 1MB
	contentTypeJSON = "application/json; charset=utf-8"
)

// ReadJSON decodifica el body JSON del request dentro de dst.
// Limita el body a 1MB y valida el Content-Type.
func ReadJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if ct != "" && !strings.Contains(ct, "application/json") {
		return httperrors.ErrBadRequest.WithDetail("unsupported content type")
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return httperrors.ErrInvalidJSON
	}
	return nil
}

// WriteJSON escribe v como respuesta JSON con el status dado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
