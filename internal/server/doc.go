// Package server wires and runs the gateway's transport servers.
//
// It starts the HTTP server and, when configured, the gRPC health server,
// waits for a termination signal and shuts everything down gracefully after
// running the registered shutdown hooks.
package server
