// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Properties is the flat, dotted-key configuration map of the gateway.
//
// Values are scalars (string, bool, int, float). Keys are unique; a later
// [Properties.AddAll] or [Properties.Set] replaces the previous value.
// Properties is safe for concurrent use.
type Properties struct {
	mu        sync.RWMutex
	values    map[string]any
	lookupEnv lookupFunc
}

// PropertiesOption configures [Properties] at construction time.
type PropertiesOption func(*Properties)

// WithLookupEnv replaces the process environment lookup used during
// placeholder resolution. Intended for tests.
func WithLookupEnv(fn func(string) (string, bool)) PropertiesOption {
	return func(p *Properties) {
		p.lookupEnv = fn
	}
}

// NewProperties returns a property map seeded with defaults.
// Defaults are flattened but not resolved.
func NewProperties(defaults map[string]any, opts ...PropertiesOption) *Properties {
	p := &Properties{
		values:    Flatten(defaults),
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddAll flattens source, sets every resulting key and resolves placeholders.
func (p *Properties) AddAll(source map[string]any) {
	p.mu.Lock()
	for k, v := range Flatten(source) {
		p.values[k] = v
	}
	p.mu.Unlock()

	p.Resolve()
}

// Resolve runs a single placeholder resolution pass over every string value.
//
// Variables are looked up in the process environment first and then in a
// snapshot of the properties taken before the pass, so a value rewritten
// during the pass is never seen by another key in the same pass.
func (p *Properties) Resolve() {
	p.mu.Lock()
	defer p.mu.Unlock()

	snapshot := maps.Clone(p.values)
	lookup := func(name string) (string, bool) {
		if v, ok := p.lookupEnv(name); ok {
			return v, true
		}
		if v, ok := snapshot[name]; ok {
			return FormatValue(v), true
		}
		return "", false
	}

	for k, v := range snapshot {
		s, ok := v.(string)
		if !ok || !hasPlaceholder(s) {
			continue
		}
		p.values[k] = interpolate(s, lookup)
	}
}

// Get returns the raw value stored under key.
func (p *Properties) Get(key string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[key]
	return v, ok
}

// Set stores value under key without resolving placeholders.
func (p *Properties) Set(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[key] = value
}

// GetString returns the value under key formatted as a string,
// or "" when the key is absent.
func (p *Properties) GetString(key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// GetBool returns the value under key as a bool. Strings are parsed with
// [strconv.ParseBool]; anything else yields false.
func (p *Properties) GetBool(key string) bool {
	v, ok := p.Get(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return err == nil && parsed
	default:
		return false
	}
}

// GetInt returns the value under key as an int, or 0 when absent or not
// numeric.
func (p *Properties) GetInt(key string) int {
	v, ok := p.Get(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// GetDuration returns the value under key as a duration. Strings use
// [time.ParseDuration] syntax ("10s"); bare numbers are milliseconds.
func (p *Properties) GetDuration(key string) time.Duration {
	v, ok := p.Get(key)
	if !ok {
		return 0
	}
	if s, isString := v.(string); isString {
		d, err := time.ParseDuration(strings.TrimSpace(s))
		if err == nil {
			return d
		}
	}
	return time.Duration(p.GetInt(key)) * time.Millisecond
}

// GetStrings collects indexed keys "<key>.0", "<key>.1", ... into a slice.
// When there are none, a comma-separated string under key is split instead.
func (p *Properties) GetStrings(key string) []string {
	var out []string
	for i := 0; ; i++ {
		v, ok := p.Get(key + "." + strconv.Itoa(i))
		if !ok {
			break
		}
		out = append(out, FormatValue(v))
	}
	if out != nil {
		return out
	}

	s := p.GetString(key)
	if s == "" {
		return nil
	}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Keys returns all keys in ascending order.
func (p *Properties) Keys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Sorted(maps.Keys(p.values))
}

// All returns a copy of the property map.
func (p *Properties) All() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return maps.Clone(p.values)
}

// WithPrefix returns the string values whose key starts with prefix + ".",
// keyed by the remainder of the key.
func (p *Properties) WithPrefix(prefix string) map[string]string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	prefix = strings.TrimSuffix(prefix, ".") + "."
	out := make(map[string]string)
	for k, v := range p.values {
		if rest, ok := strings.CutPrefix(k, prefix); ok {
			out[rest] = FormatValue(v)
		}
	}
	return out
}

// FormatValue renders a property value as text. Floats are written without
// an exponent, so 10485760.0 becomes "10485760".
func FormatValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(value), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
