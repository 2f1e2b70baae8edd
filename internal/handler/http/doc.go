// Package http implements the HTTP surface of the gateway.
//
// It wires the chi router, the middleware pipeline (trace id, tracing,
// metrics, access logging, rate limiting, CORS, sessions and the API
// documentation guard) and the handlers for login, account, management
// endpoints, API documentation and the static client.
package http
