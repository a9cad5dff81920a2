package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups the app's secrets in the OS keychain.
	KeyringService = "bdspipe"

	// EnvAPIKey overrides the keychain; handy in CI and containers.
	EnvAPIKey = "BDSPIPE_API_KEY"
)

// GetAPIKey returns the Census API key, or "" when none is configured.
// The key is optional: the BDS endpoint serves anonymous requests at a
// lower rate limit.
func GetAPIKey(keyringAccount string) string {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		return v
	}
	if strings.TrimSpace(keyringAccount) != "" {
		if key, err := keyring.Get(KeyringService, keyringAccount); err == nil {
			return strings.TrimSpace(key)
		}
	}
	return ""
}

func SetAPIKey(keyringAccount string, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteAPIKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}
