package network

import (
	"context"
	"golang.org/x/sys/unix"
	"os"
)

const netlinkGroups = unix.RTMGRP_LINK |
	unix.RTMGRP_IPV4_IFADDR | unix.RTMGRP_IPV6_IFADDR |
	unix.RTMGRP_IPV4_ROUTE | unix.RTMGRP_IPV6_ROUTE

// netlinkWatcher listens for link, address and route messages.
type netlinkWatcher struct{}

func nativeWatcher() Watcher {
	return netlinkWatcher{}
}

func (netlinkWatcher) Watch(ctx context.Context, changed chan<- struct{}) error {
	fd, err := unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC|unix.SOCK_NONBLOCK, unix.NETLINK_ROUTE)
	if err != nil {
		return os.NewSyscallError("socket", err)
	}
	addr := &unix.SockaddrNetlink{Family: unix.AF_NETLINK, Groups: netlinkGroups}
	if err := unix.Bind(fd, addr); err != nil {
		_ = unix.Close(fd)
		return os.NewSyscallError("bind", err)
	}
	// a nonblocking descriptor goes through the runtime poller,
	// closing the file unblocks the pending read.
	file := os.NewFile(uintptr(fd), "netlink")
	return readLoop(ctx, file, func([]byte) bool { return true }, changed)
}
