//go:build windows
// +build windows

// File: reactor/reactor_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows IOCP-backed AcceptReactor: one completion port for the one bound
// listener socket server.Orchestrator registers with it.

package reactor

import (
	"errors"

	"golang.org/x/sys/windows"
)

// iocpAcceptReactor watches one listener socket for accept readiness over
// its own I/O completion port.
type iocpAcceptReactor struct {
	iocp   windows.Handle
	handle windows.Handle
}

// NewAcceptReactor creates a fresh completion port for this process.
func NewAcceptReactor() (AcceptReactor, error) {
	port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	return &iocpAcceptReactor{iocp: port}, nil
}

// RegisterListener associates handle with the completion port.
func (r *iocpAcceptReactor) RegisterListener(handle uintptr) error {
	h := windows.Handle(handle)
	if _, err := windows.CreateIoCompletionPort(h, r.iocp, 0, 0); err != nil {
		return err
	}
	r.handle = h
	return nil
}

// WaitForAccept blocks on GetQueuedCompletionStatus for the registered
// listener to become ready.
func (r *iocpAcceptReactor) WaitForAccept(events []AcceptEvent) (int, error) {
	if len(events) == 0 {
		return 0, errors.New("reactor: empty event buffer")
	}

	var key uintptr
	var overlapped *windows.Overlapped

	err := windows.GetQueuedCompletionStatus(r.iocp, nil, &key, &overlapped, windows.INFINITE)
	if err != nil {
		return 0, err
	}
	events[0] = AcceptEvent{Fd: uintptr(r.handle)}
	return 1, nil
}

// Close releases the completion port handle.
func (r *iocpAcceptReactor) Close() error {
	return windows.CloseHandle(r.iocp)
}
