package transport

import (
	"encoding/json"
	"net/http"
)

// Envelope is the JSON wrapper used by every route in the API.
type Envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, Envelope{Success: true, Data: data})
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: true, Message: message})
}

// Encode renders the success envelope to bytes without writing it, for
// handlers that cache the response payload.
func Encode(data interface{}) ([]byte, error) {
	return json.Marshal(Envelope{Success: true, Data: data})
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	WriteJSON(w, status, Envelope{
		Success: false,
		Error:   message,
		Details: details,
	})
}
