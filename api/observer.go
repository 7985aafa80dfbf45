// File: api/observer.go
// Author: momentics <momentics@gmail.com>
//
// Observer is a lifecycle participant notified at orchestrator start and
// stop. Both phases may suspend; failures are aggregated, never swallowed,
// and never short-circuit the join over the remaining observers.

package api

import "context"

// Orchestrator is the narrow read-only view an Observer receives of the
// orchestrator invoking it, avoiding an import cycle with the server
// package.
type Orchestrator interface {
	State() State
}

type Observer interface {
	OnStart(ctx context.Context, orch Orchestrator, logger Logger, errorHandler ErrorHandler) error
	OnStop(ctx context.Context, orch Orchestrator) error
}
