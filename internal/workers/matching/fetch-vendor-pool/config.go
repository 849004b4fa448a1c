// internal/workers/matching/fetch-vendor-pool/config.go
package fetchvendorpool

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
