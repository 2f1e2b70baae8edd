// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ServiceRegistration describes one service instance announced to the
// discovery registry.
type ServiceRegistration struct {
	ID      string
	Name    string
	Address string
	Port    int
	Tags    []string
	Meta    map[string]string
	Checks  []HealthCheck
}

// HealthCheck is a registry-side probe of the service instance.
// Exactly one of HTTP or GRPC is set.
type HealthCheck struct {
	HTTP string
	GRPC string

	Interval                       time.Duration
	Timeout                        time.Duration
	DeregisterCriticalServiceAfter time.Duration
}
