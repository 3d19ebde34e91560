package backend

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-salon/internal/config"
	"github.com/zalando/go-keyring"
)

// KeyringToken stores the API token in the operating system keyring.
type KeyringToken struct {
	Service string
	User    string
}

// DefaultKeyringToken uses the application's keyring entry.
func DefaultKeyringToken() KeyringToken {
	return KeyringToken{Service: config.KeyringService, User: config.KeyringTokenUser}
}

// Token returns the stored token, or "" when none was saved.
func (k KeyringToken) Token() (string, error) {
	token, err := keyring.Get(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return token, err
}

// SetToken saves token; an empty token removes the entry.
func (k KeyringToken) SetToken(token string) error {
	if token == "" {
		err := keyring.Delete(k.Service, k.User)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%s: %w", config.ErrTokenStore, err)
		}
		return nil
	}
	if err := keyring.Set(k.Service, k.User, token); err != nil {
		return fmt.Errorf("%s: %w", config.ErrTokenStore, err)
	}
	return nil
}
