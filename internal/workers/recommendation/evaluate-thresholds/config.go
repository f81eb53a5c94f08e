// internal/workers/recommendation/evaluate-thresholds/config.go
package evaluatethresholds

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
	}
}
