// internal/workers/documents/extract-document-data/config.go
package extractdocumentdata

import "time"

type Config struct {
	// Mode selects the extraction backend: "mock" or "http".
	Mode           string
	BackendURL     string
	SimulatedDelay time.Duration
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Mode:           "mock",
		SimulatedDelay: 1500 * time.Millisecond,
		Timeout:        30 * time.Second,
	}
}
