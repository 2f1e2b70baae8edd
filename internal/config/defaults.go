// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Well-known property keys.
const (
	KeyServerPort     = "server.port"
	KeyIPAddress      = "ipAddress"
	KeyRandomValue    = "random.value"
	KeyConsulMetadata = "consul.metadata-map"
)

// DefaultProperties returns the built-in property defaults. Values may
// contain placeholders; they are resolved together with the YAML files.
func DefaultProperties() map[string]any {
	return map[string]any{
		"debugLogging":                "debug",
		"logging.level":               "debug",
		KeyServerPort:                 8080,
		"server.grpc-address":         "",
		"server.client-path":          "static",
		"server.read-header-timeout":  "10s",
		"server.shutdown-timeout":     "15s",
		"server.rate-limit.rps":       50,
		"server.rate-limit.burst":     100,
		"server.cors.allowed-origins": "*",

		"jhipster.clientApp.name":                                         "gateway",
		"jhipster.registry.password":                                      "admin",
		"jhipster.security.session.secret":                                "",
		"jhipster.security.session.store":                                 "sql",
		"jhipster.security.session.max-age":                               "240s",
		"jhipster.security.oauth2.client.provider.oidc.issuer-uri":        "",
		"jhipster.security.oauth2.client.registration.oidc.client-id":     "",
		"jhipster.security.oauth2.client.registration.oidc.client-secret": "",
		"jhipster.security.oauth2.client.registration.oidc.scope":         "openid,profile,email",
		"jhipster.security.oauth2.client.registration.oidc.redirect-uri":  "http://127.0.0.1:${server.port}/login/oauth2/code/oidc",
		"jhipster.mail.base-url":                                          "http://127.0.0.1:${server.port}",
		"jhipster.mail.from":                                              "gateway@localhost",
		"jhipster.swagger.default-include-pattern":                        "/api/.*",
		"jhipster.swagger.title":                                          "gateway API",
		"jhipster.swagger.description":                                    "gateway API documentation",
		"jhipster.swagger.version":                                        "0.0.1",
		"jhipster.swagger.path":                                           "/api/v2/api-docs",

		"consul.enabled":                                        true,
		"consul.host":                                           "consul.appf4s.io.vn",
		"consul.port":                                           443,
		"consul.scheme":                                         "https",
		"consul.token":                                          "",
		"consul.service-name":                                   "gateway",
		"consul.service-id":                                     "gateway:${random.value}",
		"consul.health-check-interval":                          "10s",
		"consul.health-check-timeout":                           "5s",
		"consul.health-check-deregister-critical-service-after": "30s",
		"consul.prefer-ip-address":                              true,
		"consul.metadata-map.zone":                              "primary",
		"consul.metadata-map.git-version":                       "${git.commit.id.describe:}",
		"consul.metadata-map.git-commit":                        "${git.commit.id.abbrev:}",
		"consul.metadata-map.git-branch":                        "${git.branch:}",

		"cloud.config.uri":     "https://consul.appf4s.io.vn:443/v1/kv",
		"cloud.config.name":    "gateway",
		"cloud.config.profile": "prod",
		"cloud.config.label":   "master",

		"vault.enabled":                           true,
		"vault.uri":                               "http://appf4s.io.vn:8200",
		"vault.token":                             "f4security",
		"vault.scheme":                            "http",
		"vault.kv.enabled":                        true,
		"vault.kv.backend":                        "secret",
		"vault.kv.application-name":               "common-kafka",
		"vault.configuration.infrastructure":      "secret/infrastructure",
		"vault.service-registration.enabled":      true,
		"vault.service-registration.service-name": "gateway",
		"vault.service-registration.service-id":   "gateway:${random.value}",

		"sshTunnel.vpsHost":     "localhost",
		"sshTunnel.vpsUser":     "root",
		"sshTunnel.vpsPassword": "",
		"sshTunnel.hostKey":     "",
		"sshTunnel.servicePort": 8080,
		"sshTunnel.localPort":   8080,
		"sshTunnel.devSuffix":   "-dev",

		"storage.db.driver":      "sqlite3",
		"storage.db.dsn":         "file:gateway.db?cache=shared",
		"storage.redis.addr":     "",
		"storage.redis.password": "",
		"storage.redis.db":       0,

		"tracing.endpoint":     "",
		"tracing.service-name": "${jhipster.clientApp.name:gateway}",
	}
}
