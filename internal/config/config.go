package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// MasterConfig holds every environment-derived setting the master process
// needs. Field names mirror the corresponding environment variable names.
type MasterConfig struct {
	ChunkSize               uint64        `envconfig:"CHUNK_SIZE" default:"100000"`
	MaxConcurrentJobs       int           `envconfig:"MAX_CONCURRENT_JOBS" default:"3"`
	MaxAttempts             int           `envconfig:"MAX_ATTEMPTS" default:"3"`
	MinionRequestTimeout    time.Duration `envconfig:"MINION_REQUEST_TIMEOUT" default:"5s"`
	NoMinionWaitTime        time.Duration `envconfig:"NO_MINION_WAIT_TIME" default:"500ms"`
	MinionFailureThreshold  int           `envconfig:"MINION_FAILURE_THRESHOLD" default:"3"`
	MinionBreakerOpenWindow time.Duration `envconfig:"MINION_BREAKER_OPEN_SECONDS" default:"10s"`
	MinionURLsRaw           string        `envconfig:"MINION_URLS" default:""`
	OutputFile              string        `envconfig:"OUTPUT_FILE" default:"output.json"`
}

// MinionURLs splits the comma-separated MINION_URLS value into a trimmed,
// non-empty slice of endpoint URLs.
func (c MasterConfig) MinionURLs() []string {
	var urls []string
	for _, raw := range strings.Split(c.MinionURLsRaw, ",") {
		u := strings.TrimSpace(raw)
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// MinionConfig holds every environment-derived setting the minion process
// needs.
type MinionConfig struct {
	WorkerThreads           int           `envconfig:"WORKER_THREADS" default:"2"`
	SubrangeMinSize         uint64        `envconfig:"MINION_SUBRANGE_MIN_SIZE" default:"1000"`
	CancellationCheckEvery  uint64        `envconfig:"CANCELLATION_CHECK_EVERY" default:"5000"`
	ListenAddr              string        `envconfig:"MINION_LISTEN_ADDR" default:":9090"`
	ShutdownTimeout         time.Duration `envconfig:"MINION_SHUTDOWN_TIMEOUT" default:"5s"`
}

// LoadMaster parses environment variables into a MasterConfig.
func LoadMaster() (MasterConfig, error) {
	var cfg MasterConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return MasterConfig{}, fmt.Errorf("load master config: %w", err)
	}
	return cfg, nil
}

// LoadMinion parses environment variables into a MinionConfig.
func LoadMinion() (MinionConfig, error) {
	var cfg MinionConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return MinionConfig{}, fmt.Errorf("load minion config: %w", err)
	}
	return cfg, nil
}
