package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestParseResponseError_PostgREST(t *testing.T) {
	err := ParseResponseError(response(http.StatusConflict,
		`{"code":"23503","details":"Key is not present in table \"products\".","hint":null,"message":"insert or update on table \"wishlist\" violates foreign key constraint"}`),
		"supabase")

	assert.Equal(t, http.StatusConflict, err.Status)
	assert.Equal(t, "23503", err.Code)
	assert.Contains(t, err.Message, "violates foreign key constraint")
	assert.Contains(t, err.Details, "products")
}

func TestParseResponseError_Storage(t *testing.T) {
	err := ParseResponseError(response(http.StatusBadRequest,
		`{"statusCode":"404","error":"Bucket not found","message":"Bucket not found"}`), "supabase-storage")

	assert.Equal(t, "Bucket not found", err.Code)
	assert.Equal(t, "Bucket not found", err.Message)
}

func TestParseResponseError_Razorpay(t *testing.T) {
	err := ParseResponseError(response(http.StatusBadRequest,
		`{"error":{"code":"BAD_REQUEST_ERROR","description":"The amount must be atleast INR 1.00"}}`), "razorpay")

	assert.Equal(t, "BAD_REQUEST_ERROR", err.Code)
	assert.Equal(t, "The amount must be atleast INR 1.00", err.Message)
	assert.Equal(t, "razorpay returned 400 (BAD_REQUEST_ERROR): The amount must be atleast INR 1.00", err.Error())
}

func TestParseResponseError_PlainText(t *testing.T) {
	err := ParseResponseError(response(http.StatusBadGateway, "upstream unavailable\n"), "supabase")
	assert.Equal(t, "upstream unavailable", err.Message)
	assert.Empty(t, err.Code)
}

func TestParseResponseError_EmptyJSONFallsBackToStatusText(t *testing.T) {
	err := ParseResponseError(response(http.StatusUnauthorized, `{}`), "supabase")
	assert.Equal(t, "Unauthorized", err.Message)
}
