package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/apperr"
)

// List limits per surface. Requests above the cap are clamped, not
// rejected.
const (
	defaultPublicLimit = 10
	maxPublicLimit     = 50
	defaultAdminLimit  = 20
	maxAdminLimit      = 100
)

// parseLimit reads the limit query parameter, applying the surface
// default when absent and clamping to the cap. Non-numeric and
// non-positive values are validation errors.
func parseLimit(r *http.Request, def, max int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperr.Validation("Invalid limit parameter")
	}
	if n > max {
		return max, nil
	}
	return n, nil
}

// decodeBody parses a JSON object body into per-field raw values,
// preserving which keys the client actually sent. Absent, malformed and
// empty-object bodies are all rejected.
func decodeBody(r *http.Request) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, apperr.Validation("Request body is required")
	}
	if len(fields) == 0 {
		return nil, apperr.Validation("Request body is required")
	}
	return fields, nil
}

// stringField returns the string value sent for key, or nil when the
// key was not sent or does not hold a string. JSON null decodes to the
// empty string, so null and "" are interchangeable on the wire.
func stringField(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// stringOr is stringField for fields where absent and empty collapse:
// anything but a usable string comes back as "".
func stringOr(fields map[string]json.RawMessage, key string) string {
	if p := stringField(fields, key); p != nil {
		return *p
	}
	return ""
}

// categoryParam extracts the category name path parameter, decoding
// percent-escapes so names with spaces round-trip.
func categoryParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
