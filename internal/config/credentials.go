package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/common"
	"github.com/spf13/viper"
)

// DefaultSecretsPath is where the credentials file lives relative to the
// working directory.
const DefaultSecretsPath = ".streamlit/secrets.toml"

// Credentials authenticate against Cin7.
type Credentials struct {
	BaseURL  string
	Username string
	APIKey   string
}

// LoadCredentials reads the TOML secrets file at path.
// It follows this precedence:
// 1. Direct environment variables (CIN7_API_BASE, CIN7_USERNAME, CIN7_KEY)
// 2. The secrets file
// A missing file is not an error when the environment supplies both
// username and key.
func LoadCredentials(path string) (Credentials, error) {
	var creds Credentials

	if path != "" {
		secrets := viper.New()
		secrets.SetConfigFile(path)
		secrets.SetConfigType("toml")

		if err := secrets.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Credentials{}, fmt.Errorf("failed to read secrets file %s: %w", path, err)
			}
		} else {
			creds.BaseURL = secrets.GetString("CIN7_API_BASE")
			creds.Username = secrets.GetString("CIN7_USERNAME")
			creds.APIKey = secrets.GetString("CIN7_KEY")
		}
	}

	if v := os.Getenv("CIN7_API_BASE"); v != "" {
		creds.BaseURL = v
	}
	if v := os.Getenv("CIN7_USERNAME"); v != "" {
		creds.Username = v
	}
	if v := os.Getenv("CIN7_KEY"); v != "" {
		creds.APIKey = v
	}

	if creds.Username == "" || creds.APIKey == "" {
		return Credentials{}, fmt.Errorf("%w: CIN7_USERNAME and CIN7_KEY must be set in %s or the environment",
			common.ErrMissingConfig, path)
	}
	return creds, nil
}
