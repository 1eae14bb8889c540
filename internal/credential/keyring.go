package credential

import (
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "apiforge"

// tokenKey is the well-known key under which the backend bearer token
// is persisted.
const tokenKey = "bearer-token"

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/apiforge/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("apiforge-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(key)
	if err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

// LoadToken returns the persisted bearer token, or "" when none is
// stored.
func LoadToken() string {
	token, err := Get(tokenKey)
	if err != nil {
		return ""
	}
	return token
}

// SaveToken persists the bearer token after a successful login.
func SaveToken(token string) error {
	return Set(tokenKey, token)
}

// ClearToken removes the persisted bearer token on logout.
func ClearToken() error {
	return Delete(tokenKey)
}
