package config

import (
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

const (
	// AppName is used for the XDG directory and the logger name.
	AppName = "pagescore"

	// DefaultPort is the port the aggregator service listens on.
	DefaultPort = 8000

	// DefaultHost binds the aggregator service on every interface.
	DefaultHost = ""

	// DefaultServerURL is where the batch driver reaches the aggregator service.
	DefaultServerURL = "http://localhost:8000"

	// DefaultPageSpeedEndpoint is the scoring API queried for each profile.
	DefaultPageSpeedEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

	// DefaultTimeout is the HTTP client timeout. Zero leaves the client default
	// (no timeout) in place; a page analysis regularly takes tens of seconds.
	DefaultTimeout time.Duration = 0

	// DefaultShutdownTimeout bounds graceful server shutdown.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultReadHeaderTimeout protects the server from slow clients.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultLogFormat is the log line encoding.
	DefaultLogFormat = "text"
)

// Config holds all settings of the pagescore commands.
// Values are layered: defaults, then the YAML file, then the environment,
// then command-line flags.
type Config struct {
	// APIKey is the scoring API credential. It never appears in logs.
	APIKey string

	// Host is the listen host of the aggregator service.
	Host string

	// Port is the listen port of the aggregator service.
	Port int

	// ServerURL is the base URL of the aggregator service used by clients.
	ServerURL string

	// PageSpeedEndpoint is the scoring API URL.
	PageSpeedEndpoint string

	// Timeout applies to outbound HTTP requests. Zero disables it.
	Timeout time.Duration

	// ShutdownTimeout bounds graceful shutdown of the server.
	ShutdownTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// LogFormat is "text" or "json".
	LogFormat string

	// ConfigFilePath is the YAML file the settings were read from, if any.
	ConfigFilePath string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		ServerURL:         DefaultServerURL,
		PageSpeedEndpoint: DefaultPageSpeedEndpoint,
		Timeout:           DefaultTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
		LogFormat:         DefaultLogFormat,
	}
}

// XDGConfigDir returns the directory searched for config.yaml.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Address returns the listen address of the aggregator service.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// HasAPIKey reports whether a scoring API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// RequireAPIKey returns ErrMissingAPIKey when no key is configured.
func (c *Config) RequireAPIKey() error {
	if !c.HasAPIKey() {
		return ErrMissingAPIKey
	}
	return nil
}

// ApplyFile overlays the non-zero values of f onto c.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.Server.Host != "" {
		c.Host = f.Server.Host
	}
	if f.Server.Port != 0 {
		c.Port = f.Server.Port
	}
	if f.Server.ShutdownTimeout != 0 {
		c.ShutdownTimeout = f.Server.ShutdownTimeout
	}
	if f.Client.ServerURL != "" {
		c.ServerURL = f.Client.ServerURL
	}
	if f.PageSpeed.APIKey != "" {
		c.APIKey = f.PageSpeed.APIKey
	}
	if f.PageSpeed.Endpoint != "" {
		c.PageSpeedEndpoint = f.PageSpeed.Endpoint
	}
	if f.PageSpeed.Timeout != 0 {
		c.Timeout = f.PageSpeed.Timeout
	}
	if f.Log.Format != "" {
		c.LogFormat = f.Log.Format
	}
}

// Validate checks that the configuration is usable.
// A missing API key is not a validation error; see RequireAPIKey.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.Timeout < 0 || c.ShutdownTimeout < 0 {
		return ErrInvalidTimeout
	}
	if !isHTTPURL(c.ServerURL) {
		return errors.WithDetailf(ErrInvalidServerURL, "got %q", c.ServerURL)
	}
	if !isHTTPURL(c.PageSpeedEndpoint) {
		return errors.WithDetailf(ErrInvalidEndpoint, "got %q", c.PageSpeedEndpoint)
	}
	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
