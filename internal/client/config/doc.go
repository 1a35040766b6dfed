// Package config loads runtime configuration for the terplink CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the scheduling API
//	-t int      request timeout (seconds)
//	-i int      offer poll interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.terplink.example",
//	  "request_timeout": "5s",
//	  "offer_poll_interval": "30s"
//	}
//
// The base URL has no default; (*Config).Validate returns
// common.ErrNoBaseURL when it is missing, and the CLI treats that as a
// fatal startup error.
package config
