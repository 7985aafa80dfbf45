// File: api/handler.go
// Author: momentics <momentics@gmail.com>
//
// RequestHandler is the user-supplied dispatch target. Request/Response
// object models, routing, body streaming, and content negotiation are
// out of scope for the core (§1); they are opaque payloads here.

package api

import "context"

// Request and Response are opaque to the core: the concrete HTTP object
// model lives in the driver behind DriverFactory/Client.
type Request any
type Response any

// RequestHandler dispatches a parsed request to user code. It may suspend;
// while it is running, Client.IsWaitingOnResponse must report true so the
// idle-timeout sweep does not close the connection out from under it.
type RequestHandler interface {
	Handle(ctx context.Context, req Request) (Response, error)
}

// ErrorHandler receives errors the core and its collaborators cannot
// otherwise surface: per-client protocol failures, observer setup problems
// reported outside the aggregate join, etc.
type ErrorHandler interface {
	HandleError(ctx context.Context, err error)
}
