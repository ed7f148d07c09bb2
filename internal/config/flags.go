package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a local status API address in format [host]:[port]
//	-d local SQLite database path
//	-s sync-state file path
//	-r remote backend base URL
//	-k remote anon API key
//	-c/-config json file path with configs
//	-sync-interval background sync period (e.g., "5m")
//	-probe-interval connectivity probe period (e.g., "15s")
//	-request-timeout remote request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var apiAddress string
	var databaseDSN string
	var statePath string
	var remoteBaseURL string
	var remoteAnonKey string
	var jsonConfigPath string
	var syncInterval time.Duration
	var probeInterval time.Duration
	var requestTimeout time.Duration

	flag.StringVar(&apiAddress, "a", "", "Status API address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Local SQLite database path")
	flag.StringVar(&statePath, "s", "", "Sync-state file path")
	flag.StringVar(&remoteBaseURL, "r", "", "Remote backend base URL")
	flag.StringVar(&remoteAnonKey, "k", "", "Remote anon API key")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 5m)")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe period (e.g., 15s)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 30s, 1m)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			SyncInterval:  syncInterval,
			ProbeInterval: probeInterval,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			StatePath: statePath,
		},
		Remote: Remote{
			BaseURL:        remoteBaseURL,
			AnonKey:        remoteAnonKey,
			RequestTimeout: requestTimeout,
		},
		API: API{
			Address: apiAddress,
		},
		JSONFilePath: jsonConfigPath,
	}
}
