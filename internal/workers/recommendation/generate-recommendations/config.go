// internal/workers/recommendation/generate-recommendations/config.go
package generaterecommendations

import "time"

type Config struct {
	Timeout    time.Duration
	PoolSize   int
	PoolMargin float64 // widens the candidate salary-delta query beyond the tier bands
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		PoolSize:   100,
		PoolMargin: 0.05,
	}
}
