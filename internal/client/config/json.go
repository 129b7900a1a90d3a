package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/geotracker/internal/flagx"
	"github.com/dmitrijs2005/geotracker/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Empty fields keep the
// value already in Config.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	LookupBaseURL  string         `json:"lookup_base_url"`
	LookupToken    string         `json:"lookup_token"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DatabaseDSN    string         `json:"database_dsn"`
	Debug          bool           `json:"debug"`
}

// parseJson reads the file given with -c/-config, if any. Read or decode
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.LookupBaseURL != "" {
		cfg.LookupBaseURL = jc.LookupBaseURL
	}
	if jc.LookupToken != "" {
		cfg.LookupToken = jc.LookupToken
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	cfg.Debug = cfg.Debug || jc.Debug
}
