package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the optional dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// Environment variables understood by pagescore.
const (
	EnvAPIKey            = "PAGESPEED_API_KEY"
	EnvAPIKeyLegacy      = "Google_API"
	EnvPort              = "PORT"
	EnvServerURL         = "PAGESCORE_SERVER_URL"
	EnvPageSpeedEndpoint = "PAGESCORE_PAGESPEED_ENDPOINT"
	EnvLogFormat         = "PAGESCORE_LOG_FORMAT"
)

// LoadEnv overlays environment variables onto cfg. Variables may also come
// from envFile (dotenv syntax); the process environment wins over the file.
// A missing envFile is ignored.
func LoadEnv(cfg *Config, envFile string) error {
	v, err := newEnvViper(envFile)
	if err != nil {
		return err
	}

	if key := firstNonEmpty(v, EnvAPIKey, EnvAPIKeyLegacy); key != "" {
		cfg.APIKey = key
	}
	if port := firstNonEmpty(v, EnvPort); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return errors.Wrapf(ErrInvalidPort, "%s=%q", EnvPort, port)
		}
		cfg.Port = n
	}
	if serverURL := firstNonEmpty(v, EnvServerURL); serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if endpoint := firstNonEmpty(v, EnvPageSpeedEndpoint); endpoint != "" {
		cfg.PageSpeedEndpoint = endpoint
	}
	if format := firstNonEmpty(v, EnvLogFormat); format != "" {
		cfg.LogFormat = format
	}
	return nil
}

func newEnvViper(envFile string) (*viper.Viper, error) {
	v := viper.New()
	for _, name := range []string{EnvAPIKey, EnvAPIKeyLegacy, EnvPort, EnvServerURL, EnvPageSpeedEndpoint, EnvLogFormat} {
		// Explicit names keep the mixed-case Google_API lookup intact.
		if err := v.BindEnv(strings.ToLower(name), name); err != nil {
			return nil, errors.Wrapf(err, "failed to bind %s", name)
		}
	}

	if envFile == "" {
		return v, nil
	}
	if _, err := os.Stat(envFile); err != nil {
		return v, nil //nolint:nilerr // the dotenv file is optional
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", envFile)
	}
	return v, nil
}

func firstNonEmpty(v *viper.Viper, names ...string) string {
	for _, name := range names {
		if s := strings.TrimSpace(v.GetString(strings.ToLower(name))); s != "" {
			return s
		}
	}
	return ""
}
