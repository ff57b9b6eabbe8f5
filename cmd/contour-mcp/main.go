package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ironsheep/contour-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("contour-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("contour-tools-mcp - MCP server for image binarization and contour tracing")
			fmt.Println()
			fmt.Println("Usage: contour-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  CONTOUR_MCP_LOG_LEVEL=debug    Set log verbosity (trace|debug|info|warn|error)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Logs go to stderr; stdout carries the MCP protocol.
	level := zerolog.InfoLevel
	if env := os.Getenv("CONTOUR_MCP_LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("starting contour-tools-mcp")

	srv := server.New(log)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
