//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package network

import (
	"context"
	"os"
)

// readLoop reads messages from file until ctx is done
// and signals every message for which relevant returns true.
func readLoop(ctx context.Context, file *os.File, relevant func([]byte) bool, changed chan<- struct{}) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = file.Close()
	}()
	buf := make([]byte, 1<<16)
	for {
		n, err := file.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if relevant(buf[:n]) {
			notify(changed)
		}
	}
}
