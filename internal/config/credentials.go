package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Credentials represents the persisted token pair for the backend.
// Values are guarded so the refresh path can rotate them while a request
// snapshot is taken elsewhere.
type Credentials struct {
	mu           sync.RWMutex `json:"-"` // Not serialized
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Snapshot returns both tokens atomically
func (c *Credentials) Snapshot() (access, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AccessToken, c.RefreshToken
}

// SetBoth updates both tokens atomically
func (c *Credentials) SetBoth(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AccessToken = access
	c.RefreshToken = refresh
}

// GetCredentialsPath returns the path to the credentials file
func GetCredentialsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "credentials.json"), nil
}

// LoadCredentials loads the token pair from the credentials file
func LoadCredentials() (*Credentials, error) {
	credsPath, err := GetCredentialsPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(credsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no credentials found. Please log in first:\n  intervue login <path-to-credentials.json>")
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	return parseCredentials(data)
}

func parseCredentials(data []byte) (*Credentials, error) {
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("invalid credentials format: expected {access_token, refresh_token}")
	}

	if creds.AccessToken == "" {
		return nil, fmt.Errorf("missing required field: access_token")
	}

	return &creds, nil
}

// SaveCredentials saves the token pair to the credentials file
func SaveCredentials(creds *Credentials) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	access, refresh := creds.Snapshot()
	data, err := json.MarshalIndent(struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}{access, refresh}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	credsPath := filepath.Join(configDir, "credentials.json")

	// Owner read/write only
	if err := os.WriteFile(credsPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

// ImportCredentials imports a token pair from a source file
func ImportCredentials(sourcePath string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source file not found: %s", sourcePath)
		}
		return fmt.Errorf("could not read file: %w", err)
	}

	creds, err := parseCredentials(data)
	if err != nil {
		return err
	}

	return SaveCredentials(creds)
}

// ClearCredentials removes both persisted tokens. It is a no-op when no
// credentials file exists, so logout always succeeds.
func ClearCredentials() error {
	credsPath, err := GetCredentialsPath()
	if err != nil {
		return err
	}

	if err := os.Remove(credsPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials file: %w", err)
	}

	return nil
}

// ValidateCredentials checks if the token pair is usable
func ValidateCredentials(creds *Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are nil")
	}
	if creds.AccessToken == "" {
		return fmt.Errorf("missing required field: access_token")
	}
	return nil
}
