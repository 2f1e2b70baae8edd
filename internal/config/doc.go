// Package config provides configuration loading, merging, and validation
// facilities for the gateway.
//
// Configuration is assembled in two stages.
//
// The first stage produces [Properties]: a flat dotted-key property map built
// from the built-in defaults, application.yml and application-<profile>.yml,
// with ${name} and ${name:default} placeholders resolved against the merged
// properties and the process environment. Secrets fetched at startup are
// overlaid onto the same map.
//
// The second stage binds the properties into a typed [StructuredConfig] and
// layers the remaining sources on top of it (later sources override earlier
// non-zero fields):
//  1. Properties (defaults + YAML + secrets)
//  2. Environment variables
//  3. Command-line flags
//
// The main entry points are [LoadProperties] and [GetStructuredConfig].
package config
