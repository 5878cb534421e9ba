package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError emits the error envelope for requests rejected before they
// reach a handler. The handler package's envelopes are out of reach here
// without an import cycle.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": msg})
}
