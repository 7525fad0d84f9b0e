package base

import (
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"projekt/connectivity/lib/lifecycle"
	"projekt/connectivity/lib/platform"
	"projekt/connectivity/lib/platform/sim"
	"time"
)

const (
	BackendHost      = "host"
	BackendSimulated = "simulated"

	WatcherNative = "native"
	WatcherPoll   = "poll"
)

var (
	ErrUnknownBackend = errors.New("unknown platform backend")
	ErrUnknownWatcher = errors.New("unknown network watcher")
)

type Config struct {
	Platform   PlatformConfig `yaml:"platform"`
	Observe    ObserveConfig  `yaml:"observe"`
	Simulation sim.Script     `yaml:"simulation"`
}

type PlatformConfig struct {
	Backend      string                `yaml:"backend"`
	Level        platform.Level        `yaml:"level"`
	Watcher      string                `yaml:"watcher"`
	PollInterval time.Duration         `yaml:"poll_interval"`
	Deny         []platform.Permission `yaml:"deny"`
}

type ObserveConfig struct {
	// State is the lifecycle state in which the network is observed.
	State lifecycle.State `yaml:"state"`
}

func DefaultConfig() *Config {
	return &Config{
		Platform: PlatformConfig{
			Backend:      BackendHost,
			Level:        platform.LevelDefaultNetwork,
			Watcher:      WatcherNative,
			PollInterval: 2 * time.Second,
		},
		Observe: ObserveConfig{
			State: lifecycle.Resumed,
		},
	}
}

// Load reads the configuration at path on top of the defaults.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Platform.Backend {
	case BackendHost, BackendSimulated:
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.Platform.Backend)
	}
	switch c.Platform.Watcher {
	case WatcherNative, WatcherPoll:
	default:
		return fmt.Errorf("%w %q", ErrUnknownWatcher, c.Platform.Watcher)
	}
	switch c.Observe.State {
	case lifecycle.Created, lifecycle.Started, lifecycle.Resumed:
	default:
		return fmt.Errorf("cannot observe in state %v", c.Observe.State)
	}
	return c.Simulation.Validate()
}
