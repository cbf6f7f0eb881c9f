package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from a hosted API, decoded from whichever
// error shape the upstream uses.
type APIError struct {
	Service string
	Status  int
	Code    string
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s returned %d (%s): %s", e.Service, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%s returned %d: %s", e.Service, e.Status, e.Message)
}

// errorBody covers PostgREST ({message, code, details, hint}), Supabase
// storage ({statusCode, error, message}) and Razorpay
// ({"error": {code, description}}).
type errorBody struct {
	Message string          `json:"message"`
	Code    json.RawMessage `json:"code"`
	Details string          `json:"details"`
	Hint    string          `json:"hint"`
	Error   json.RawMessage `json:"error"`
}

type nestedError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Message     string `json:"message"`
}

// ParseResponseError consumes and closes resp.Body and returns an *APIError.
// Call it only for non-2xx responses.
func ParseResponseError(resp *http.Response, service string) *APIError {
	defer func() { _ = resp.Body.Close() }()

	apiErr := &APIError{Service: service, Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		apiErr.Message = fmt.Sprintf("read body: %v", err)
		return apiErr
	}

	var body errorBody
	if json.Unmarshal(raw, &body) != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}

	apiErr.Message = body.Message
	apiErr.Code = unquote(body.Code)
	apiErr.Details = body.Details
	if apiErr.Details == "" {
		apiErr.Details = body.Hint
	}

	if len(body.Error) > 0 {
		var nested nestedError
		if json.Unmarshal(body.Error, &nested) == nil {
			apiErr.Code = nested.Code
			if nested.Description != "" {
				apiErr.Message = nested.Description
			} else if nested.Message != "" {
				apiErr.Message = nested.Message
			}
		} else if apiErr.Code == "" {
			apiErr.Code = unquote(body.Error)
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// unquote turns a JSON string or number into plain text.
func unquote(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
