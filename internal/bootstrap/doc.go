// Package bootstrap assembles the gateway from its configuration.
//
// Startup is a single sequential pass:
//
//  1. read the bootstrap settings (profile, config directory, .env file);
//  2. load application.yml and application-<profile>.yml into properties;
//  3. overlay vault secrets onto the properties and the process environment;
//  4. bind the typed configuration and apply the log level;
//  5. open storage, build services, sessions, login flow and handlers;
//  6. open the dev SSH tunnel and register with consul;
//  7. serve until a termination signal, then deregister and shut down.
//
// Failures of optional integrations (vault, consul, tunnel, OIDC) are logged
// and startup continues without them.
package bootstrap
