//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package network

import (
	"context"
	"golang.org/x/net/route"
	"golang.org/x/sys/unix"
	"os"
)

// routeWatcher reads the routing socket.
type routeWatcher struct{}

func nativeWatcher() Watcher {
	return routeWatcher{}
}

func (routeWatcher) Watch(ctx context.Context, changed chan<- struct{}) error {
	fd, err := unix.Socket(unix.AF_ROUTE, unix.SOCK_RAW, unix.AF_UNSPEC)
	if err != nil {
		return os.NewSyscallError("socket", err)
	}
	unix.CloseOnExec(fd)
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return os.NewSyscallError("setnonblock", err)
	}
	file := os.NewFile(uintptr(fd), "route")
	return readLoop(ctx, file, isInterfaceChange, changed)
}

func isInterfaceChange(b []byte) bool {
	msgs, err := route.ParseRIB(route.RIBTypeRoute, b)
	if err != nil {
		// unknown message layouts are treated as changes
		return true
	}
	for _, m := range msgs {
		switch m.(type) {
		case *route.RouteMessage, *route.InterfaceMessage, *route.InterfaceAddrMessage:
			return true
		}
	}
	return false
}
