package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse writes a structured JSON error body with a machine-readable
// code and a human-readable message. All API endpoints report failures
// through this shape.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON encodes data as the JSON response body. The status header is
// only written when it differs from 200, so Encode can still surface
// serialization failures on the common path.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}
