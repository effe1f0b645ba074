// internal/workers/admission/rank-school-matches/config.go
package rankschoolmatches

import "time"

type Config struct {
	// TopN truncates the ranked list; 0 returns everything.
	TopN    int
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		TopN:    0,
		Timeout: 30 * time.Second,
	}
}
