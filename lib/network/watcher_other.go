//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package network

func nativeWatcher() Watcher {
	return PollWatcher{Interval: DefaultPollInterval}
}
