// internal/workers/application/generate-status-timeline/config.go
package generatestatustimeline

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
