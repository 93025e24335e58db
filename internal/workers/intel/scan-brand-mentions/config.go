// internal/workers/intel/scan-brand-mentions/config.go
package scanbrandmentions

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
