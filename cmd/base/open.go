package base

import (
	"context"
	"errors"
	"log"
	"projekt/connectivity/lib/network"
	"projekt/connectivity/lib/platform"
	"projekt/connectivity/lib/platform/host"
	"projekt/connectivity/lib/platform/sim"
)

// Open creates the platform selected by the configuration.
// The returned function releases it again.
func Open(ctx context.Context, cfg *Config) (platform.Context, func() error, error) {
	switch cfg.Platform.Backend {
	case BackendSimulated:
		return openSimulated(ctx, cfg)
	case BackendHost:
		return openHost(ctx, cfg)
	}
	return nil, nil, ErrUnknownBackend
}

func openHost(ctx context.Context, cfg *Config) (platform.Context, func() error, error) {
	var watcher network.Watcher = network.PollWatcher{Interval: cfg.Platform.PollInterval}
	if cfg.Platform.Watcher == WatcherNative {
		watcher = network.NewWatcher()
	}
	tracker := network.NewTrackerWith(network.Interfaces, watcher)
	system, err := host.Open(ctx, host.WithLevel(cfg.Platform.Level), host.WithTracker(tracker))
	if err != nil {
		return nil, nil, err
	}
	return system, system.Close, nil
}

func openSimulated(ctx context.Context, cfg *Config) (platform.Context, func() error, error) {
	device := sim.New(
		sim.WithLevel(cfg.Platform.Level),
		sim.WithDeniedPermissions(cfg.Platform.Deny...),
	)
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		err := cfg.Simulation.Play(ctx, device)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Println("simulation stopped:", err)
		}
	}()
	closer := func() error {
		cancel()
		<-done
		return nil
	}
	return device, closer, nil
}
