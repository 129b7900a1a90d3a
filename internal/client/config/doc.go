// Package config loads runtime configuration for the geotracker CLI.
//
// Sources, lowest precedence first: built-in defaults, an optional JSON file
// named with -c or -config, then command-line flags.
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "lookup_base_url": "https://ipinfo.io",
//	  "lookup_token": "",
//	  "request_timeout": "10s",
//	  "database_dsn": "geotracker.db"
//	}
package config
