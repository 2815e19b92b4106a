package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmoraes/catalogo/internal/config"
	"github.com/jmoraes/catalogo/internal/debuglog"
	"github.com/jmoraes/catalogo/internal/tui"
	"github.com/jmoraes/catalogo/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("catalogo " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		default:
			return fmt.Errorf("unknown argument: %s (try --help)", os.Args[1])
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := debuglog.New(cfg.DebugLog, cfg.LogLevel)
	if err != nil {
		return err
	}

	session := client.NewSession()
	c := client.New(cfg.APIURL, session, log)

	app := tui.NewApp(c, session, tui.Options{
		Version:  version,
		PageSize: cfg.PageSize,
		DocsURL:  cfg.DocsURL,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func printHelp() {
	fmt.Print(`catalogo — terminal client for the product catalog API

usage:
  catalogo            start the interface
  catalogo --version  print the version
  catalogo --help     show this help

environment:
  CATALOGO_API_URL    API base URL including /api (default https://localhost:5001/api)
  CATALOGO_DOCS_URL   API docs URL for the help screen
  CATALOGO_DEBUG_LOG  path of the JSON debug log file (off when empty)
  CATALOGO_LOG_LEVEL  logrus level for the debug log (default debug)
  CATALOGO_PAGE_SIZE  product page size (default 10)

a .env file in the working directory is read before the environment.
`)
}
