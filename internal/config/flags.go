package config

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

// ParseFlags parses the gateway command-line flags from args (without the
// program name). Unset flags leave the corresponding fields zero.
//
// Flags:
//
//	--config-dir   directory with application.yml files
//	--profile      configuration profile (application-<profile>.yml)
//	--env-file     .env file loaded before configuration
//	--port         HTTP listen port
//	--log-level    log level (trace, debug, info, warn, error)
//	--grpc-address gRPC health server address host:port
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		configDir   string
		profile     string
		envFile     string
		port        int
		logLevel    string
		grpcAddress string
	)

	app := kingpin.New("gateway", "Microservice gateway.")
	app.Terminate(nil)
	app.Flag("config-dir", "Directory with application.yml files.").StringVar(&configDir)
	app.Flag("profile", "Configuration profile (dev, test, prod).").Short('p').StringVar(&profile)
	app.Flag("env-file", "Path to a .env file.").StringVar(&envFile)
	app.Flag("port", "HTTP listen port.").IntVar(&port)
	app.Flag("log-level", "Log level.").EnumVar(&logLevel, "trace", "debug", "info", "warn", "error")
	app.Flag("grpc-address", "gRPC health server address host:port.").StringVar(&grpcAddress)

	if _, err := app.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Profile:   profile,
		ConfigDir: configDir,
		EnvFile:   envFile,
		Server: Server{
			Port:        port,
			GRPCAddress: grpcAddress,
		},
		Logging: Logging{
			Level: logLevel,
		},
	}, nil
}
