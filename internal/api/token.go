package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/pedrosal/intervue/internal/config"
	apierrors "github.com/pedrosal/intervue/internal/errors"
)

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// refreshTokens rotates the token pair via the refresh endpoint and
// persists the result. Concurrent callers are serialized; whoever loses the
// race still benefits from the fresh pair.
func (c *Client) refreshTokens(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	_, refresh := c.creds.Snapshot()
	if refresh == "" {
		return apierrors.NewAuthError("no refresh token available")
	}

	access, rotated, err := RefreshTokens(ctx, c.httpClient, c.baseURL, refresh)
	if err != nil {
		return err
	}

	// Backends that do not rotate refresh tokens return an empty one.
	if rotated == "" {
		rotated = refresh
	}
	c.creds.SetBoth(access, rotated)

	if err := c.persist(c.creds); err != nil {
		// Tokens are valid in memory; losing the persisted copy only costs
		// a re-login after this process exits.
		fmt.Fprintf(os.Stderr, "Warning: failed to save refreshed credentials: %v\n", err)
	}

	return nil
}

// RefreshTokens exchanges a refresh token for a new token pair.
func RefreshTokens(ctx context.Context, hc *http.Client, baseURL, refreshToken string) (access, refresh string, err error) {
	tmp := &Client{
		httpClient: hc,
		baseURL:    baseURL,
		creds:      &config.Credentials{AccessToken: "-"},
		persist:    func(*config.Credentials) error { return nil },
	}

	data, err := tmp.send(ctx, http.MethodPost, "/api/auth/refresh", refreshRequest{RefreshToken: refreshToken}, nil)
	if err != nil {
		if apierrors.HTTPStatus(err) == http.StatusUnauthorized {
			return "", "", apierrors.NewAuthError(apierrors.Detail(err, "refresh token rejected"))
		}
		return "", "", err
	}

	var parsed refreshResponse
	if jsonErr := json.Unmarshal(data, &parsed); jsonErr != nil {
		return "", "", apierrors.NewParseError("refresh response is not valid JSON", "/api/auth/refresh")
	}
	if parsed.AccessToken == "" {
		return "", "", apierrors.NewParseError("refresh response missing access_token", "/api/auth/refresh")
	}

	return parsed.AccessToken, parsed.RefreshToken, nil
}
