package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "traceID", TraceIDCtxKey.String())
}

func TestGetTraceIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID string
		wantOK bool
	}{
		{
			name:   "present",
			ctx:    context.WithValue(context.Background(), TraceIDCtxKey, "trace-1"),
			wantID: "trace-1",
			wantOK: true,
		},
		{
			name: "missing",
			ctx:  context.Background(),
		},
		{
			name: "empty string",
			ctx:  context.WithValue(context.Background(), TraceIDCtxKey, ""),
		},
		{
			name: "wrong type",
			ctx:  context.WithValue(context.Background(), TraceIDCtxKey, 42),
		},
		{
			name: "plain string key does not collide",
			ctx:  context.WithValue(context.Background(), "traceID", "trace-1"), //nolint:staticcheck
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetTraceIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
