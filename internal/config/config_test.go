package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DJCELL1/KP-Workshop-Tool/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearCin7Env(t *testing.T) {
	t.Helper()
	t.Setenv("CIN7_API_BASE", "")
	t.Setenv("CIN7_USERNAME", "")
	t.Setenv("CIN7_KEY", "")
}

func TestLoadCredentials(t *testing.T) {
	t.Run("reads the secrets file", func(t *testing.T) {
		clearCin7Env(t)
		path := writeSecrets(t, `
CIN7_API_BASE = "https://api.example.test/v1"
CIN7_USERNAME = "workshop"
CIN7_KEY = "abc123"
`)
		creds, err := LoadCredentials(path)
		require.NoError(t, err)
		assert.Equal(t, Credentials{
			BaseURL:  "https://api.example.test/v1",
			Username: "workshop",
			APIKey:   "abc123",
		}, creds)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		clearCin7Env(t)
		t.Setenv("CIN7_KEY", "from-env")
		path := writeSecrets(t, `
CIN7_USERNAME = "workshop"
CIN7_KEY = "abc123"
`)
		creds, err := LoadCredentials(path)
		require.NoError(t, err)
		assert.Equal(t, "workshop", creds.Username)
		assert.Equal(t, "from-env", creds.APIKey)
		assert.Empty(t, creds.BaseURL)
	})

	t.Run("missing file with environment credentials", func(t *testing.T) {
		clearCin7Env(t)
		t.Setenv("CIN7_USERNAME", "env-user")
		t.Setenv("CIN7_KEY", "env-key")

		creds, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, "env-user", creds.Username)
	})

	t.Run("missing credentials", func(t *testing.T) {
		clearCin7Env(t)
		path := writeSecrets(t, `CIN7_USERNAME = "workshop"`)

		_, err := LoadCredentials(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("malformed file", func(t *testing.T) {
		clearCin7Env(t)
		path := writeSecrets(t, `CIN7_USERNAME = = "x"`)

		_, err := LoadCredentials(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read secrets file")
	})
}

func TestLoad(t *testing.T) {
	clearCin7Env(t)
	path := writeSecrets(t, `
CIN7_API_BASE = "https://api.example.test/v1"
CIN7_USERNAME = "workshop"
CIN7_KEY = "abc123"
`)

	t.Run("defaults", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("secrets.path", path)

		s, err := Load(v)
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.test/v1", s.Cin7.BaseURL)
		assert.Equal(t, 30*time.Second, s.Cin7.Timeout)
		assert.Equal(t, 3, s.Cin7.Retry.MaxAttempts)
		assert.Equal(t, time.Second, s.Cin7.Retry.BaseDelay)
		assert.InDelta(t, 2.0, s.Cin7.Retry.RateLimitMultiplier, 0.0001)
		assert.True(t, s.Cin7.Breaker.Enabled)
		assert.Equal(t, uint32(5), s.Cin7.Breaker.ConsecutiveFailures)
		assert.Equal(t, "767392", s.Links.CustomerAppsLink)
		assert.Equal(t, "Pacific/Auckland", s.Board.Timezone)
		assert.Equal(t, 7, s.Board.DueSoonDays)
		assert.Equal(t, 250, s.Board.PageSize)
		assert.Equal(t, 100, s.Board.MaxPages)
		assert.Equal(t, 3*time.Minute, s.Board.RefreshInterval)
		assert.Equal(t, ":5000", s.Server.Address)
		assert.Equal(t, []string{"*"}, s.Server.AllowedOrigins)
	})

	t.Run("explicit base url beats the secrets file", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("secrets.path", path)
		v.Set("cin7.base_url", "https://staging.example.test/v1")

		s, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, "https://staging.example.test/v1", s.Cin7.BaseURL)
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			value any
			key   string
		}{
			{key: "board.page_size", value: 0},
			{key: "board.max_pages", value: -1},
			{key: "board.due_soon_days", value: -2},
			{key: "board.timezone", value: "Mars/Olympus_Mons"},
			{key: "cin7.base_url", value: "not a url"},
		}
		for _, tt := range tests {
			t.Run(tt.key, func(t *testing.T) {
				v := viper.New()
				SetDefaults(v)
				v.Set("secrets.path", path)
				v.Set(tt.key, tt.value)

				_, err := Load(v)
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			})
		}
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("KPBOARD_TEST_DIR", "/srv/kpboard")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "secrets.toml"), ExpandPath("~/secrets.toml"))
	assert.Equal(t, "/srv/kpboard/secrets.toml", ExpandPath("$KPBOARD_TEST_DIR/secrets.toml"))
	assert.Equal(t, ".streamlit/secrets.toml", ExpandPath(".streamlit/secrets.toml"))
}
