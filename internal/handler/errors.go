package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pquist/bunkplan/backend/internal/domain"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
// Encoding failures are logged, not surfaced — the status line is already
// committed by then.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}

// writeError writes an ErrorResponse with the given status, code, and message.
func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondError maps a service/repo error onto the HTTP error taxonomy:
// validation → 422, not found → 404, ownership (exists, wrong trip) → 403,
// anything else → 500 with the full error logged and a generic body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		s.writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrOwnership):
		s.writeError(w, http.StatusForbidden, "ownership_error", unwrapMessage(err))
	default:
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		s.writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// badRequest writes a 422 for a request rejected before reaching the service
// layer (malformed body, bad query parameter).
func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.writeError(w, http.StatusUnprocessableEntity, "validation_error", message)
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// typos in client payloads fail loudly instead of being silently dropped.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %s", err)
	}
	return nil
}

// pathID parses the named chi URL parameter as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: must be a UUID", name)
	}
	return id, nil
}

// queryDate parses a required "2006-01-02" query parameter.
func queryDate(r *http.Request, name string) (domain.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return "", fmt.Errorf("query parameter %q is required", name)
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s: %s", name, unwrapMessage(err))
	}
	return d, nil
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrNotFound.Error(),
		domain.ErrOwnership.Error(),
	} {
		// Wrapped form is "<op prefixes>: <sentinel>: <detail>".
		if i := strings.LastIndex(msg, sentinel+": "); i >= 0 {
			return msg[i+len(sentinel)+2:]
		}
		// Bare sentinel with op prefixes but no detail.
		if strings.HasSuffix(msg, sentinel) {
			return sentinel
		}
	}
	return msg
}
