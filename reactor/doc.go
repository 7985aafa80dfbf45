// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides AcceptReactor, the accept-readiness abstraction
// listener.Listener registers a BoundEndpoint's socket against, plus
// cross-platform implementations for epoll (Linux) and IOCP (Windows). Each
// bound endpoint gets its own reactor instance and its own per-listener
// goroutine calling WaitForAccept; only that goroutine ever touches the
// instance, so no locking is needed inside an AcceptReactor implementation.
package reactor
