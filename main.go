package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/soocke/tkview/app"
	"github.com/soocke/tkview/assets"
	"github.com/soocke/tkview/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("tkview", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), assets.Usage)
		fs.PrintDefaults()
	}
	var (
		interactive bool
		cfgPath     string
		debug       bool
		logLevel    string
	)
	fs.BoolVar(&interactive, "i", false, "run the interactive command shell (Escape hides the window)")
	fs.BoolVar(&interactive, "interactive", false, "same as -i")
	fs.StringVar(&cfgPath, "config", "", "config file (.json, .yaml, .yml or .toml)")
	fs.BoolVar(&debug, "debug", false, "log goroutine and memory stats")
	fs.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	// Base config from defaults or file; flags override.
	cfg := config.DefaultConfig()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tkview: config: %v\n", err)
			return 2
		}
		cfg = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i", "interactive":
			cfg.Interactive = interactive
		case "debug":
			cfg.Debug = debug
		case "log-level":
			cfg.LogLevel = logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "tkview: config: %v\n", err)
		return 2
	}

	// Set up logger
	logger := NewLogger(os.Stderr, parseLevel(cfg.LogLevel))

	application, err := app.NewApp(context.Background(), fs.Arg(0), cfg, logger)
	if err != nil {
		logger.Error("startup failed", slog.String("input", fs.Arg(0)), slog.String("error", err.Error()))
		return 1
	}
	application.Start()
	return 0
}
