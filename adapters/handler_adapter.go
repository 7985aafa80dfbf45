// File: adapters/handler_adapter.go
// Package adapters
// Author: momentics <momentics@gmail.com>
//
// RequestHandler middleware chain, generalized from the teacher's
// HandlerFunc/MiddlewareHandler shape to the orchestrator's
// request/response contract.

package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momentics/hioload-ws/api"
)

// RequestHandlerFunc adapts a function to api.RequestHandler.
type RequestHandlerFunc func(ctx context.Context, req api.Request) (api.Response, error)

func (f RequestHandlerFunc) Handle(ctx context.Context, req api.Request) (api.Response, error) {
	return f(ctx, req)
}

// MiddlewareHandler wraps a base RequestHandler and applies middleware in
// registration order around it.
type MiddlewareHandler struct {
	handler    api.RequestHandler
	middleware []func(api.RequestHandler) api.RequestHandler
}

func NewMiddlewareHandler(handler api.RequestHandler) *MiddlewareHandler {
	return &MiddlewareHandler{handler: handler}
}

// Use appends mw to the chain and returns m for chaining.
func (m *MiddlewareHandler) Use(mw func(api.RequestHandler) api.RequestHandler) *MiddlewareHandler {
	m.middleware = append(m.middleware, mw)
	return m
}

func (m *MiddlewareHandler) Handle(ctx context.Context, req api.Request) (api.Response, error) {
	handler := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		handler = m.middleware[i](handler)
	}
	return handler.Handle(ctx, req)
}

type correlationIDKey struct{}

// CorrelationIDFrom returns the request id LoggingMiddleware attached to
// ctx, if any.
func CorrelationIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey{}).(string)
	return id, ok
}

// LoggingMiddleware tags every request with a fresh correlation id and logs
// entry, plus any handler error, through logger.
func LoggingMiddleware(logger api.Logger) func(api.RequestHandler) api.RequestHandler {
	return func(next api.RequestHandler) api.RequestHandler {
		return RequestHandlerFunc(func(ctx context.Context, req api.Request) (api.Response, error) {
			id := uuid.NewString()
			ctx = context.WithValue(ctx, correlationIDKey{}, id)
			logger.Debug("handling request", "request_id", id)
			resp, err := next.Handle(ctx, req)
			if err != nil {
				logger.Error("request failed", "request_id", id, "err", err)
			}
			return resp, err
		})
	}
}

// RecoveryMiddleware converts a panic in the wrapped handler into an error
// instead of taking down the client's goroutine.
func RecoveryMiddleware(logger api.Logger) func(api.RequestHandler) api.RequestHandler {
	return func(next api.RequestHandler) api.RequestHandler {
		return RequestHandlerFunc(func(ctx context.Context, req api.Request) (resp api.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					if logger != nil {
						logger.Alert("recovered from handler panic", "panic", r)
					}
					err = fmt.Errorf("request handler panicked: %v", r)
				}
			}()
			return next.Handle(ctx, req)
		})
	}
}

// MetricsMiddleware increments the "handler.processed" counter through
// ctrl.IncMetric on every call, generalizing the teacher's
// counter-in-Control-stats pattern. Counting lives in ctrl's own
// MetricsRegistry rather than a middleware-local variable, so every
// concurrently-running client's handler chain shares one accurate total.
func MetricsMiddleware(ctrl api.Control) func(api.RequestHandler) api.RequestHandler {
	return func(next api.RequestHandler) api.RequestHandler {
		return RequestHandlerFunc(func(ctx context.Context, req api.Request) (api.Response, error) {
			ctrl.IncMetric("handler.processed", 1)
			return next.Handle(ctx, req)
		})
	}
}
