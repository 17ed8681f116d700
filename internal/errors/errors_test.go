package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAuthError_Is(t *testing.T) {
	err := NewAuthError("tokens expired")

	if !errors.Is(err, ErrAuthFailed) {
		t.Error("AuthError should match ErrAuthFailed")
	}
}

func TestAuthError_Message(t *testing.T) {
	if got := NewAuthError("").Error(); got != "authentication failed: tokens may have expired" {
		t.Errorf("Error() = %q", got)
	}

	if got := NewAuthError("bad refresh token").Error(); got != "authentication failed: bad refresh token" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAPIError_Error(t *testing.T) {
	err := NewAPIError(502, "/api/chats", "Bad Gateway")

	want := "API error [502] at /api/chats: Bad Gateway"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseError_Is(t *testing.T) {
	err := NewParseError("missing reply", "/api/chats/c1/hint")

	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("ParseError should match ErrInvalidResponse")
	}
}

func TestHTTPStatus(t *testing.T) {
	if got := HTTPStatus(NewAPIError(404, "/api/chats/x", "Not Found")); got != 404 {
		t.Errorf("HTTPStatus() = %d, want 404", got)
	}

	wrapped := fmt.Errorf("loading chat: %w", NewAPIError(500, "/api/chats", "Internal Server Error"))
	if got := HTTPStatus(wrapped); got != 500 {
		t.Errorf("HTTPStatus(wrapped) = %d, want 500", got)
	}

	if got := HTTPStatus(errors.New("plain")); got != 0 {
		t.Errorf("HTTPStatus(plain) = %d, want 0", got)
	}
}

func TestDetail(t *testing.T) {
	apiErr := NewAPIError(400, "/api/chats", "Bad Request")
	apiErr.Detail = "interview already finished"

	if got := Detail(apiErr, "generic"); got != "interview already finished" {
		t.Errorf("Detail() = %q", got)
	}

	if got := Detail(NewAPIError(500, "/api/chats", "Internal Server Error"), "generic"); got != "generic" {
		t.Errorf("Detail() without detail = %q, want fallback", got)
	}

	if got := Detail(errors.New("plain"), "generic"); got != "generic" {
		t.Errorf("Detail(plain) = %q, want fallback", got)
	}
}

func TestClassifiers(t *testing.T) {
	if !IsAuthError(NewAuthError("x")) {
		t.Error("IsAuthError should be true for AuthError")
	}
	if IsAuthError(NewTimeoutError("x")) {
		t.Error("IsAuthError should be false for TimeoutError")
	}

	if !IsTimeoutError(NewTimeoutError("GET /api/chats")) {
		t.Error("IsTimeoutError should be true for TimeoutError")
	}

	netErr := NewNetworkError("GET /api/chats", errors.New("connection refused"))
	if !IsNetworkError(netErr) {
		t.Error("IsNetworkError should be true for NetworkError")
	}
	if !errors.Is(netErr, netErr.Err) {
		t.Error("NetworkError should unwrap to its cause")
	}
}
