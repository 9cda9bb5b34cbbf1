package config

import "time"

// File represents the structure of the .pagescore configuration file.
type File struct {
	Server    ServerSection    `yaml:"server,omitempty"`
	Client    ClientSection    `yaml:"client,omitempty"`
	PageSpeed PageSpeedSection `yaml:"pagespeed,omitempty"`
	Log       LogSection       `yaml:"log,omitempty"`
}

// ServerSection configures the aggregator service.
type ServerSection struct {
	Host            string        `yaml:"host,omitempty"`
	Port            int           `yaml:"port,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// ClientSection configures how the batch driver reaches the aggregator service.
type ClientSection struct {
	ServerURL string `yaml:"server_url,omitempty"`
}

// PageSpeedSection configures the scoring API.
type PageSpeedSection struct {
	// APIKey is accepted for convenience; the environment takes precedence.
	APIKey   string        `yaml:"api_key,omitempty"`
	Endpoint string        `yaml:"endpoint,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// LogSection configures logging.
type LogSection struct {
	Format string `yaml:"format,omitempty"`
}
