package transport

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the envelope for every failed request. Details maps field
// names to what is wrong with them.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

const contentTypeJSON = "application/json; charset=utf-8"

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode error"}`, http.StatusInternalServerError)
		return
	}
	WriteRaw(w, status, body)
}

// WriteRaw sends an already encoded JSON body, such as a cached grid.
func WriteRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	if len(details) == 0 {
		details = nil
	}
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// WriteFieldErrors rejects a form with 422 and the messages of its failing fields.
func WriteFieldErrors(w http.ResponseWriter, details map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation error", details)
}
