// Package application hosts the use cases orchestrating the request engine,
// the session store, and the Klarna gateway.
package application

import "context"

// UseCase is the common shape of every application use case: one command in,
// one result out, telemetry recorded around the execution.
type UseCase[C any, R any] interface {
	Execute(ctx context.Context, cmd C) (R, error)
}
