package config

import (
	"flag"
	"time"
)

// ParseFlags parses configuration flags from args (typically os.Args[1:])
// into a [StructuredConfig]. Unknown flags produce an error on the returned
// flag set, which is ignored here: flag parsing is best-effort and the
// merged config is validated afterwards.
//
// Flags:
//
//	-a base URL of the sync service
//	-d local database path (SQLite file)
//	-c/-config json file path with configs
//	-request-timeout feed request timeout (e.g., "10s", "1m")
//	-sync-interval background sync interval (e.g., "5m")
//	-log-file write logs to a file next to the executable
func ParseFlags(args []string) *StructuredConfig {
	fs := flag.NewFlagSet("risu", flag.ContinueOnError)

	var baseURL string
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var logToFile bool

	fs.StringVar(&baseURL, "a", "", "Sync service base URL")
	fs.StringVar(&databaseDSN, "d", "", "Local database path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Feed request timeout (e.g., 10s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	fs.BoolVar(&logToFile, "log-file", false, "Write logs to a file next to the executable")

	_ = fs.Parse(args)

	return &StructuredConfig{
		App: App{LogToFile: logToFile},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
