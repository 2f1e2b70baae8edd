package server

import "context"

// Server defines the lifecycle contract of the transport servers managed by
// this package.
type Server interface {
	// RunServer serves requests until ctx is done or a termination signal is
	// received, then shuts down. It returns the error of a transport that
	// failed to serve.
	RunServer(ctx context.Context) error

	// OnShutdown registers a hook run before the transports stop. Hooks run
	// in registration order.
	OnShutdown(hook func(ctx context.Context))
}
