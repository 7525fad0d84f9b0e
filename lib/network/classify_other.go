//go:build !linux

package network

import "projekt/connectivity/lib/platform"

func deviceTransport(string) (platform.Transport, bool) {
	return 0, false
}
