package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lyle8341/flake/internal/codec"
	idsvc "github.com/lyle8341/flake/internal/services/ids"
	"github.com/lyle8341/flake/pkg/snowflake"
)

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response with the given data.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service and generator errors to HTTP statuses.
// Clock trouble is transient, so clients are told to retry.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, idsvc.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, snowflake.ErrClockRegression), errors.Is(err, snowflake.ErrWaitTimeout):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, snowflake.ErrInvalidConfig):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseCount parses the count query parameter. Empty means 1.
func parseCount(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New("count must be an integer")
	}
	return n, nil
}

// formatIDs renders ids as JSON numbers for the decimal format and as strings
// otherwise.
func formatIDs(ids []int64, f codec.Format) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = codec.Encode(id, f)
	}
	return out
}
