package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/geotracker/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows about; anything else on
// the command line is ignored.
//
//	-a string   backend base URL
//	-l string   lookup service base URL
//	-k string   lookup service token
//	-t int      request timeout (seconds)
//	-d string   local database path
//	-v          debug logging
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-l", "-k", "-t", "-d", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	fs.StringVar(&cfg.LookupBaseURL, "l", cfg.LookupBaseURL, "geolocation lookup base URL")
	fs.StringVar(&cfg.LookupToken, "k", cfg.LookupToken, "geolocation lookup token")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local database path")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
