package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pedrosal/intervue/internal/config"
	apierrors "github.com/pedrosal/intervue/internal/errors"
)

// newTestClient builds a client against a local test server with persistence
// disabled so tests never touch the real config directory.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds := &config.Credentials{AccessToken: "access-1", RefreshToken: "refresh-1"}
	client, err := NewClient(srv.URL, creds,
		WithPersist(func(*config.Credentials) error { return nil }),
	)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	return client, srv
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("http://localhost", nil); err == nil {
		t.Error("nil credentials should be rejected")
	}
	if _, err := NewClient("http://localhost", &config.Credentials{}); err == nil {
		t.Error("empty access token should be rejected")
	}
	if _, err := NewClient("", &config.Credentials{AccessToken: "a"}); err == nil {
		t.Error("empty backend URL should be rejected")
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client, err := NewClient("http://localhost:9999///", &config.Credentials{AccessToken: "a"})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if got := client.BaseURL(); got != "http://localhost:9999" {
		t.Errorf("BaseURL() = %q", got)
	}
}

func TestSend_BearerHeader(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))

	if _, err := client.ListChats(context.Background()); err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if gotAuth != "Bearer access-1" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestDoJSON_RefreshAndRetry(t *testing.T) {
	persisted := false

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"access-2","refresh_token":"refresh-2"}`))
	})
	mux.HandleFunc("/api/chats", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"token expired"}`))
			return
		}
		w.Write([]byte(`[{"id":"c1"}]`))
	})

	client, _ := newTestClient(t, mux)
	client.persist = func(*config.Credentials) error {
		persisted = true
		return nil
	}

	chats, err := client.ListChats(context.Background())
	if err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}
	if len(chats) != 1 || chats[0].ID != "c1" {
		t.Errorf("unexpected chats after retry: %+v", chats)
	}
	if !persisted {
		t.Error("rotated credentials were not persisted")
	}

	access, refresh := client.creds.Snapshot()
	if access != "access-2" || refresh != "refresh-2" {
		t.Errorf("credentials = (%q, %q), want rotated pair", access, refresh)
	}
}

func TestDoJSON_RefreshKeepsOldRefreshToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		// Backend does not rotate refresh tokens
		w.Write([]byte(`{"access_token":"access-2"}`))
	})
	mux.HandleFunc("/api/chats", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"token expired"}`))
			return
		}
		w.Write([]byte(`[]`))
	})

	client, _ := newTestClient(t, mux)
	if _, err := client.ListChats(context.Background()); err != nil {
		t.Fatalf("ListChats failed: %v", err)
	}

	_, refresh := client.creds.Snapshot()
	if refresh != "refresh-1" {
		t.Errorf("refresh token = %q, want original kept", refresh)
	}
}

func TestDoJSON_UnauthorizedAfterRefresh(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token":"access-2","refresh_token":"refresh-2"}`))
	})
	mux.HandleFunc("/api/chats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"account disabled"}`))
	})

	client, _ := newTestClient(t, mux)
	_, err := client.ListChats(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !apierrors.IsAuthError(err) {
		t.Errorf("expected auth error, got %T: %v", err, err)
	}
}

func TestDoJSON_RejectedRefreshToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"refresh token revoked"}`))
	})
	mux.HandleFunc("/api/chats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired"}`))
	})

	client, _ := newTestClient(t, mux)
	_, err := client.ListChats(context.Background())
	if !apierrors.IsAuthError(err) {
		t.Errorf("expected auth error, got %v", err)
	}
}

func TestDoJSON_APIErrorDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"message too long"}`))
	}))

	_, err := client.SendMessage(context.Background(), "c1", "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apierrors.HTTPStatus(err); got != http.StatusUnprocessableEntity {
		t.Errorf("HTTPStatus = %d, want 422", got)
	}
	if got := apierrors.Detail(err, "fallback"); got != "message too long" {
		t.Errorf("Detail = %q", got)
	}
}

func TestDoJSON_APIErrorWithoutDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.ListChats(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apierrors.Detail(err, "fallback"); got != "fallback" {
		t.Errorf("Detail = %q, want fallback when backend sent no body", got)
	}
}

func TestDoJSON_NetworkError(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := client.ListChats(context.Background())
	if err == nil {
		t.Fatal("expected error against closed server")
	}
	if !apierrors.IsNetworkError(err) {
		t.Errorf("expected network error, got %T: %v", err, err)
	}
}

func TestClient_Closed(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	client.Close()
	if !client.IsClosed() {
		t.Fatal("IsClosed() = false after Close")
	}
	if _, err := client.ListChats(context.Background()); err == nil {
		t.Error("closed client should refuse requests")
	}
}

func TestRefreshTokens_MissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"refresh_token":"r2"}`))
	}))
	defer srv.Close()

	_, _, err := RefreshTokens(context.Background(), srv.Client(), srv.URL, "refresh-1")
	if err == nil {
		t.Fatal("expected error for response missing access_token")
	}
	var parseErr *apierrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("expected parse error, got %T: %v", err, err)
	}
}
