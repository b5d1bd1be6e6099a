package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ariefcatur/go-realtime-catalog.git/internal/carts"
	"github.com/ariefcatur/go-realtime-catalog.git/internal/catalog"
)

// Envelope standar: {status: success|error, payload|message}.
type envelope struct {
	Status  string `json:"status"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, code int, payload any) {
	writeJSON(w, code, envelope{Status: "success", Payload: payload})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, envelope{Status: "error", Message: msg})
}

// writeDomainError memetakan error domain ke status code. Error store yang
// tidak dikenal jadi 500 generik, detail internal tidak bocor ke client.
func writeDomainError(w http.ResponseWriter, err error) {
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, carts.ErrCartNotFound),
		errors.Is(err, carts.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.Error("request failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
