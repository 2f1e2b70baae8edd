package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    *StructuredConfig
		wantErr bool
	}{
		{
			name: "no flags",
			args: nil,
			want: &StructuredConfig{},
		},
		{
			name: "all flags",
			args: []string{
				"--config-dir", "/etc/gateway",
				"--profile", "prod",
				"--env-file", "prod.env",
				"--port", "9000",
				"--log-level", "error",
				"--grpc-address", ":9090",
			},
			want: &StructuredConfig{
				Profile:   "prod",
				ConfigDir: "/etc/gateway",
				EnvFile:   "prod.env",
				Server:    Server{Port: 9000, GRPCAddress: ":9090"},
				Logging:   Logging{Level: "error"},
			},
		},
		{
			name: "short profile flag",
			args: []string{"-p", "test"},
			want: &StructuredConfig{Profile: "test"},
		},
		{
			name: "equals syntax",
			args: []string{"--port=8081"},
			want: &StructuredConfig{Server: Server{Port: 8081}},
		},
		{
			name:    "non numeric port",
			args:    []string{"--port", "abc"},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			args:    []string{"--log-level", "loud"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"--unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
