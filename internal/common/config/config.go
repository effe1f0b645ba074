// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Catalog       CatalogConfig           `mapstructure:"catalog"`
	Extraction    ExtractionConfig        `mapstructure:"extraction"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	Database       string `mapstructure:"database"`
	SSLMode        string `mapstructure:"ssl_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
}

// GetDSN builds a lib/pq connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	URL       string   `mapstructure:"url"`
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	Index     string   `mapstructure:"index"`
}

// --- Domain Config ---

// CatalogConfig controls where the school reference catalog is loaded from.
// Source is one of "static", "postgres", "elasticsearch".
type CatalogConfig struct {
	Source string `mapstructure:"source"`
	Index  string `mapstructure:"index"`
}

// ExtractionConfig controls the document extraction backend.
// Mode is "mock" (deterministic simulated extraction) or "http" (real OCR service).
type ExtractionConfig struct {
	Mode           string `mapstructure:"mode"`
	BackendURL     string `mapstructure:"backend_url"`
	TimeoutMs      int    `mapstructure:"timeout_ms"`
	SimulatedDelay int    `mapstructure:"simulated_delay_ms"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	Retries       int  `mapstructure:"retries"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type NotificationConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	AWSRegion    string `mapstructure:"aws_region"`
	SenderEmail  string `mapstructure:"sender_email"`
	SMSEnabled   bool   `mapstructure:"sms_enabled"`
	EmailEnabled bool   `mapstructure:"email_enabled"`
}
