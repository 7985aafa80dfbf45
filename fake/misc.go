// File: fake/misc.go
// Author: momentics <momentics@gmail.com>
//
// Small remaining doubles: driver factory, request handler, error handler.
package fake

import (
	"context"

	"github.com/momentics/hioload-ws/api"
)

// DriverFactory returns a fixed ALPN protocol list.
type DriverFactory struct {
	Protocols []string
}

func NewDriverFactory(protocols ...string) *DriverFactory {
	return &DriverFactory{Protocols: protocols}
}

func (d *DriverFactory) ApplicationLayerProtocols() []string { return d.Protocols }

// RequestHandler echoes the request back as the response.
type RequestHandler struct{}

func (RequestHandler) Handle(_ context.Context, req api.Request) (api.Response, error) {
	return req, nil
}

// ErrorHandler records every error it receives.
type ErrorHandler struct {
	Errors []error
}

func (e *ErrorHandler) HandleError(_ context.Context, err error) {
	e.Errors = append(e.Errors, err)
}
