// internal/workers/documents/validate-document-data/config.go
package validatedocumentdata

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
