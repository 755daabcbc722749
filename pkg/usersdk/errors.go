package usersdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the service. The server sends message
// as a string, or as a list of strings for validation failures; both decode
// into Messages.
type APIError struct {
	StatusCode int      `json:"statusCode"`
	Messages   []string `json:"-"`
	Reason     string   `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Reason != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Reason, msg)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, msg)
}

// Message returns the first message, which is the whole message for
// non-validation errors.
func (e *APIError) Message() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}

func (e *APIError) UnmarshalJSON(data []byte) error {
	var raw struct {
		StatusCode int             `json:"statusCode"`
		Message    json.RawMessage `json:"message"`
		Error      string          `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.StatusCode = raw.StatusCode
	e.Reason = raw.Error
	e.Messages = nil

	if len(raw.Message) == 0 {
		return nil
	}

	var single string
	if err := json.Unmarshal(raw.Message, &single); err == nil {
		e.Messages = []string{single}
		return nil
	}
	return json.Unmarshal(raw.Message, &e.Messages)
}

// StatusOf returns the HTTP status of an *APIError, or 0 for other errors.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

// IsConflict reports whether err is a 409 from the service.
func IsConflict(err error) bool { return StatusOf(err) == http.StatusConflict }

// IsUnauthorized reports whether err is a 401 from the service.
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }

// parseErrorResponse builds an *APIError from an error body. Bodies that are
// not in the service's shape still yield an error carrying the status.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.StatusCode == 0 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Messages:   []string{strings.TrimSpace(string(body))},
			Reason:     http.StatusText(resp.StatusCode),
		}
	}
	return apiErr
}
