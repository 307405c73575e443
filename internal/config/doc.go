// Package config loads the master and minion process configuration from
// environment variables via envconfig, applying documented defaults for
// every tunable.
package config
