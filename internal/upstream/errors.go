// Package upstream implements the authenticated HTTP client for the
// remote RestX backend: base-URL resolution, bearer auth with a
// single-flighted refresh on 401, the error taxonomy, and the
// multipart image upload helper.
package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnreachable is returned when no response was received at all
// (DNS, connect, TLS failures). Callers keep their previous state and
// let the operator retry.
var ErrUnreachable = errors.New("could not reach the server")

// ErrSessionExpired is returned when a 401 could not be recovered by
// refreshing the token. The stored credentials have already been
// cleared by the time callers see it.
var ErrSessionExpired = errors.New("session expired, please sign in again")

// APIError is a non-2xx backend response mapped to a user-presentable
// message. Fields holds the per-field validation messages of a 400
// response when the backend supplied them.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string { return e.Message }

// errorBody mirrors the shapes the backend uses for failures: a
// validation problem with per-field errors, or a flat object carrying
// message, title or error, in descending order of preference.
type errorBody struct {
	Errors  map[string][]string `json:"errors"`
	Message string              `json:"message"`
	Title   string              `json:"title"`
	Err     string              `json:"error"`
	Detail  string              `json:"detail"`
}

// decodeError maps a non-2xx response to an APIError. Validation
// failures join the field messages into one line per field; the other
// classes get a fixed message, with 5xx carrying any backend detail.
func decodeError(status int, body []byte) *APIError {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	apiErr := &APIError{StatusCode: status, Fields: eb.Errors}
	switch {
	case status == 400:
		apiErr.Message = validationMessage(eb)
	case status == 401:
		apiErr.Message = "not authenticated"
	case status == 403:
		apiErr.Message = "you do not have permission to perform this action"
	case status == 404:
		apiErr.Message = "the requested resource was not found"
	case status >= 500:
		apiErr.Message = "the server encountered an error"
		if d := firstNonEmpty(eb.Detail, eb.Message, eb.Title); d != "" {
			apiErr.Message += ": " + d
		}
	default:
		apiErr.Message = firstNonEmpty(eb.Message, eb.Title, eb.Err,
			fmt.Sprintf("request failed with status %d", status))
	}
	return apiErr
}

// validationMessage renders a 400 body. Field errors win; fields are
// emitted in sorted order so the message is stable.
func validationMessage(eb errorBody) string {
	if len(eb.Errors) > 0 {
		keys := make([]string, 0, len(eb.Errors))
		for k := range eb.Errors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, k+": "+strings.Join(eb.Errors[k], "; "))
		}
		return strings.Join(lines, "\n")
	}
	return firstNonEmpty(eb.Message, eb.Title, eb.Err, "invalid request")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
