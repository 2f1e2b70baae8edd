package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-gateway/internal/bootstrap"
	"github.com/MKhiriev/go-gateway/internal/logger"
	"github.com/MKhiriev/go-gateway/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	log := logger.NewLogger("gateway")
	if err := bootstrap.Run(context.Background(), os.Args[1:], buildInfo, log); err != nil {
		log.Fatal().Err(err).Msg("gateway stopped with error")
	}
}
