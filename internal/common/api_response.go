package common

import (
	"encoding/json"
	"net/http"
	"time"

	"vikare/airports/internal/constants"
	"vikare/airports/internal/logging"
	"vikare/airports/internal/models/dtos"
)

// RespondJSON writes body as JSON with the given status code. A Content-Type
// already set by the caller is kept.
func RespondJSON(w http.ResponseWriter, code int, body any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}

// RespondError sends a standardized JSON error response.
// The error detail is only exposed for client errors; 5xx responses carry message alone.
func RespondError(w http.ResponseWriter, initTime time.Time, err error, message string, statusCode ...int) {
	code := http.StatusInternalServerError
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	msg := message
	if err != nil && err.Error() != "" && code < http.StatusInternalServerError {
		msg = err.Error()
	}

	response := dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      msg,
		ResponseTime: GetResponseTime(initTime),
	}

	RespondJSON(w, code, response)
}

// RespondNoContent signals an absent resource.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
