package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{
		"api_base_url": "https://json.terplink.example",
		"request_timeout": "7s",
		"offer_poll_interval": 45000000000
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	old := os.Args
	defer func() { os.Args = old }()
	os.Args = []string{"cli", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "https://json.terplink.example", cfg.APIBaseURL)
	require.Equal(t, 7*time.Second, cfg.RequestTimeout)
	require.Equal(t, 45*time.Second, cfg.OfferPollInterval)
}

func TestParseJson_NoFileLeavesDefaults(t *testing.T) {
	old := os.Args
	defer func() { os.Args = old }()
	os.Args = []string{"cli"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
}
