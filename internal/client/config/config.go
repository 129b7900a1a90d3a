package config

import "time"

// Config holds runtime settings for the geotracker CLI.
type Config struct {
	ServerBaseURL  string
	LookupBaseURL  string
	LookupToken    string
	RequestTimeout time.Duration
	DatabaseDSN    string
	Debug          bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.LookupBaseURL = "https://ipinfo.io"
	c.LookupToken = ""
	c.RequestTimeout = 10 * time.Second
	c.DatabaseDSN = "geotracker.db"
	c.Debug = false
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
