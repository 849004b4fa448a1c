// internal/workers/matching/rank-vendor-matches/config.go
package rankvendormatches

import "time"

type Config struct {
	Timeout    time.Duration
	MaxResults int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		MaxResults: 20,
	}
}
