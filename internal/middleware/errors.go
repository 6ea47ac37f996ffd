package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes the API error envelope. It mirrors the handler
// package's shape so clients see one format whichever layer rejects them.
func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
