package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

func writeJSON(logger *log.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Printf("Error encoding response: %v", err)
	}
}

// callerID reads the X-User-Id header. A missing or non-numeric value is
// a request-validation failure, reported as 422 by the caller.
func callerID(r *http.Request) (int64, bool) {
	raw := r.Header.Get("X-User-Id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path segment such as {user_id}.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
