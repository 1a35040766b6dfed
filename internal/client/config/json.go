package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/akoval/terplink/internal/flagx"
	"github.com/akoval/terplink/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
	OfferPollInterval timex.Duration `json:"offer_poll_interval"`
}

// parseJson overlays Config with values loaded from a JSON file selected
// via the -c or -config flags. If no file is given, the Config is left
// unchanged. Read or unmarshal errors panic; config problems should stop
// the program before any command runs.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OfferPollInterval.Duration != 0 {
		cfg.OfferPollInterval = time.Duration(jc.OfferPollInterval.Duration)
	}
}
