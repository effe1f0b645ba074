// internal/workers/data-access/query-school-catalog/config.go
package queryschoolcatalog

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
