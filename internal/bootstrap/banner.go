package bootstrap

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/MKhiriev/go-gateway/internal/config"
	"github.com/MKhiriev/go-gateway/models"
)

const banner = `
   ____       _
  / ___| __ _| |_ _____      ____ _ _   _
 | |  _ / _' | __/ _ \ \ /\ / / _' | | | |
 | |_| | (_| | ||  __/\ V  V / (_| | |_| |
  \____|\__,_|\__\___| \_/\_/ \__,_|\__, |
                                    |___/
`

// PrintBuildInfo writes the startup banner, the build metadata and the main
// listen settings of cfg to w.
func PrintBuildInfo(w io.Writer, buildInfo models.AppBuildInfo, cfg *config.StructuredConfig) {
	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Fprint(w, banner)
	gray.Fprintf(w, "    version: %s\n", buildInfo.BuildVersion())
	gray.Fprintf(w, "    date:    %s\n", buildInfo.BuildDate())
	gray.Fprintf(w, "    commit:  %s\n\n", buildInfo.BuildCommit())

	line := func(label, value string) {
		green.Fprint(w, "    ▶ ")
		fmt.Fprintf(w, "%-9s %s\n", label+":", value)
	}

	line("Profile", cfg.Profile)
	line("Config", cfg.ConfigDir)
	line("HTTP", ":"+strconv.Itoa(cfg.Server.Port))
	if cfg.Server.GRPCAddress != "" {
		line("gRPC", cfg.Server.GRPCAddress)
	}
	line("Database", cfg.Storage.DB.Driver)

	if cfg.Consul.Enabled {
		green.Fprint(w, "    ▶ ")
		fmt.Fprintf(w, "%-9s ", "Consul:")
		cyan.Fprint(w, cfg.Consul.Host)
		if !cfg.Vault.Enabled {
			yellow.Fprint(w, " [no vault]")
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
}
