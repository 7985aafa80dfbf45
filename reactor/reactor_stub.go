//go:build !linux && !windows
// +build !linux,!windows

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// AcceptReactor has no backing implementation outside Linux/Windows;
// server.Orchestrator's serveListener falls back to listener.Listener.Serve's
// blocking-Accept goroutine when this returns an error.

package reactor

import "errors"

// NewAcceptReactor always fails on unsupported platforms, signaling the
// caller to fall back to Listener.Serve's blocking accept loop.
func NewAcceptReactor() (AcceptReactor, error) {
	return nil, errors.New("reactor: accept reactor not implemented for this platform")
}
