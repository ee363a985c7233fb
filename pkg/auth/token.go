// Package auth stores the webhook bearer token in the OS keychain, with a
// plain file fallback for hosts without one.
package auth

import (
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/zalando/go-keyring"
)

const (
	tokenFileName  = "webhook_token"
	keyringService = "dropctl"
	keyringUser    = "webhook_token"
)

// SaveToken stores the token in the OS keychain, falling back to a file
// under dir when no keychain is available.
func SaveToken(dir, token string) error {
	if token == "" {
		return fmt.Errorf("token is required")
	}

	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "error", err)
		return saveTokenFile(dir, token)
	}

	// Clean up legacy file if it exists
	os.Remove(path.Join(dir, tokenFileName))

	return nil
}

// GetToken reads the token from the OS keychain, falling back to the file
// under dir. A token found only in the file is migrated to the keychain.
func GetToken(dir string) (string, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err == nil && token != "" {
		return token, nil
	}

	token, err = getTokenFile(dir)
	if err != nil {
		return "", err
	}

	if migrateErr := keyring.Set(keyringService, keyringUser, token); migrateErr == nil {
		slog.Info("migrated token from file to OS keychain")
		os.Remove(path.Join(dir, tokenFileName))
	}

	return token, nil
}

// DeleteToken removes the token from both the keychain and the file.
func DeleteToken(dir string) error {
	kerr := keyring.Delete(keyringService, keyringUser)
	ferr := os.Remove(path.Join(dir, tokenFileName))
	if kerr != nil && ferr != nil {
		return fmt.Errorf("no stored token found")
	}
	return nil
}

func saveTokenFile(dir, token string) error {
	return os.WriteFile(path.Join(dir, tokenFileName), []byte(token), 0600)
}

func getTokenFile(dir string) (string, error) {
	tokenPath := path.Join(dir, tokenFileName)
	b, err := os.ReadFile(tokenPath)
	if err != nil {
		return "", fmt.Errorf("reading token file %s: %w", tokenPath, err)
	}
	return string(b), nil
}
