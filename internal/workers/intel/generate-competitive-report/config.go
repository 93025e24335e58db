// internal/workers/intel/generate-competitive-report/config.go
package generatecompetitivereport

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		// Full-corpus scans are IO-bound; give them room.
		Timeout: 120 * time.Second,
	}
}
