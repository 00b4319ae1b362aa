package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/ringlet/pkg/errors"
)

// errorBody is the JSON shape for all API errors.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as a JSON response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warnf("Write response failed: %v", err)
	}
}

// writeError maps an error to an HTTP status via its code and writes the
// structured error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		s.logger.Errorf("Request failed: %v", err)
		// Internal details stay in the log.
		s.writeJSON(w, status, errorBody{Error: errorDetail{
			Code:    string(errors.ErrCodeInternal),
			Message: "internal error",
		}})
		return
	}
	s.writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidNodeCount,
		errors.ErrCodeInvalidCrossLink,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeParse:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeDiagramNotFound,
		errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeParse, err, "parse request body")
	}
	return nil
}
