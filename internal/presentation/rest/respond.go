package rest

import (
	"encoding/json"
	"net/http"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/internal/domain/domainerr"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps the domain error taxonomy onto HTTP status codes.
// Internal errors are not echoed back to the client.
func writeError(w http.ResponseWriter, err error) {
	switch domainerr.KindOf(err) {
	case domainerr.KindValidation:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case domainerr.KindNotFound:
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case domainerr.KindConflict:
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

// decodeJSON parses a request body, treating malformed JSON as a validation
// error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domainerr.Validation("invalid request body: %v", err)
	}
	return nil
}
