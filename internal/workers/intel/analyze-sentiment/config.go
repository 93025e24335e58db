// internal/workers/intel/analyze-sentiment/config.go
package analyzesentiment

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
