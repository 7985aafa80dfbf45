//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-backed AcceptReactor: level-triggered readiness for the one
// bound listener socket server.Orchestrator registers with it.

package reactor

import (
	"golang.org/x/sys/unix"
)

// epollAcceptReactor watches one listener socket for accept readiness over
// its own epoll instance.
type epollAcceptReactor struct {
	epfd int
}

// NewAcceptReactor opens a fresh epoll instance for this process.
func NewAcceptReactor() (AcceptReactor, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, err
	}
	return &epollAcceptReactor{epfd: epfd}, nil
}

// RegisterListener arms fd for level-triggered read readiness, so every
// WaitForAccept call reports the listener again while any connection is
// still queued for Accept.
func (r *epollAcceptReactor) RegisterListener(fd uintptr) error {
	event := &unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(fd),
	}
	return unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, int(fd), event)
}

// WaitForAccept blocks in epoll_wait until the registered listener is
// ready, translating the raw epoll event into an AcceptEvent.
func (r *epollAcceptReactor) WaitForAccept(events []AcceptEvent) (int, error) {
	raw := make([]unix.EpollEvent, len(events))
	n, err := unix.EpollWait(r.epfd, raw, -1)
	if err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		events[i] = AcceptEvent{Fd: uintptr(raw[i].Fd)}
	}
	return n, nil
}

// Close tears down the epoll instance.
func (r *epollAcceptReactor) Close() error {
	return unix.Close(r.epfd)
}
