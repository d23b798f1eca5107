package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope is the JSON shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Warning string      `json:"warning,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Success writes a success envelope.
func Success(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Envelope{Success: true, Data: data})
}

// SuccessWithWarning writes a success envelope carrying a warning.
func SuccessWithWarning(w http.ResponseWriter, status int, data interface{}, warning string) {
	write(w, status, Envelope{Success: true, Data: data, Warning: warning})
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Error: message})
}
