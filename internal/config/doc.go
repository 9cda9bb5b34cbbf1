// Package config provides configuration for pagescore.
//
// Settings are layered in this order, later layers winning:
//   - built-in defaults (NewConfig)
//   - the YAML file (.pagescore in the working or home directory, or
//     config.yaml under the XDG config directory)
//   - environment variables, optionally read from a .env file
//   - command-line flags, applied by the cmd package
//
// The scoring API key is read from PAGESPEED_API_KEY, or from Google_API
// for compatibility with existing deployments. The server may start
// without it; Watch lets a running server pick up a rotated key.
package config
