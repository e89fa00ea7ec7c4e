package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	version := GetVersion()
	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 64
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` 888       888  .d88888b.  8888888b.  88888888888 888    888`,
		` 888   o   888 d88P" "Y88b 888   Y88b     888     888    888`,
		` 888  d8b  888 888     888 888    888     888     888    888`,
		` 888 d888b 888 888     888 888   d88P     888     8888888888`,
		` 888d88888b888 888     888 8888888P"      888     888    888`,
		` 88888P Y88888 888     888 888 T88b       888     888    888`,
		` 8888P   Y8888 Y88b. .d88P 888  T88b      888     888    888`,
		` 888P     Y888  "Y88888P"  888   T88b     888     888    888`,
	}

	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  version:  %s\n", version)
	fmt.Fprintf(os.Stderr, "  env:      %s\n", config.Environment)
	fmt.Fprintf(os.Stderr, "  url:      %s\n", serviceURL)
	if config.Demo.Enabled {
		fmt.Fprintf(os.Stderr, "  mode:     demo (synthetic ledger)\n")
	} else {
		fmt.Fprintf(os.Stderr, "  storage:  %s\n", config.Storage.Path)
	}
	fmt.Fprintf(os.Stderr, "%s\n\n", hr)

	logger.Info().Str("version", version).Str("env", config.Environment).Msg("Worth starting")
}
