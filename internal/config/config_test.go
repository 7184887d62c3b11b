package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NETBANK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	require.Equal(t, 10000, cfg.API.TimeoutMS)
	require.Equal(t, "₹", cfg.UI.CurrencySymbol)
	require.Equal(t, 5, cfg.UI.RecentLimit)
	require.Equal(t, 10, cfg.UI.HistoryLimit)
	require.Empty(t, cfg.Session.Path)
	require.Equal(t, int64(10_000_000_000), int64(cfg.API.Timeout()))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `[api]
base_url = "https://bank.example.com"
timeout_ms = 2500

[ui]
currency_symbol = "$"
recent_limit = 3
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("NETBANK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://bank.example.com", cfg.API.BaseURL)
	require.Equal(t, 2500, cfg.API.TimeoutMS)
	require.Equal(t, "$", cfg.UI.CurrencySymbol)
	require.Equal(t, 3, cfg.UI.RecentLimit)
	require.Equal(t, 10, cfg.UI.HistoryLimit, "unset keys keep defaults")
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("NETBANK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("NETBANK_API_BASE_URL", "http://10.0.0.5:8080")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.5:8080", cfg.API.BaseURL)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("NETBANK_CONFIG", path)

	in := Config{
		API: APIConfig{BaseURL: "http://h:1", TimeoutMS: 1234},
		UI:  UIConfig{CurrencySymbol: "€", RecentLimit: 7, HistoryLimit: 20},
	}
	require.NoError(t, Save(in))

	out, err := Load()
	require.NoError(t, err)
	require.Equal(t, in.API, out.API)
	require.Equal(t, in.UI, out.UI)
}
