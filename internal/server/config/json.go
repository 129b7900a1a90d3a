package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/geotracker/internal/flagx"
	"github.com/dmitrijs2005/geotracker/internal/timex"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// Durations use timex.Duration, so both "24h" and integer nanoseconds parse.
type JsonConfig struct {
	EndpointAddr            string         `json:"endpoint_addr"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	CookieSecure            bool           `json:"cookie_secure"`
	Debug                   bool           `json:"debug"`
}

// parseJson loads the file named by -c/-config into config. Only fields set
// in the file replace the current values. An unreadable file or invalid JSON
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionValidityDuration.Duration != 0 {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	config.CookieSecure = config.CookieSecure || c.CookieSecure
	config.Debug = config.Debug || c.Debug
}
