package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"

	app "github.com/rocketscienceinc/tictactoe-ledger/internal"
	"github.com/rocketscienceinc/tictactoe-ledger/internal/config"
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := initConfig()
	logger := initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger. The pterm format reads better next to the interactive console.
func initLogger(conf *config.Config) *slog.Logger {
	level := slog.LevelInfo
	ptermLevel := pterm.LogLevelInfo

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
		ptermLevel = pterm.LogLevelDebug
	case "warn":
		level = slog.LevelWarn
		ptermLevel = pterm.LogLevelWarn
	case "error":
		level = slog.LevelError
		ptermLevel = pterm.LogLevelError
	}

	if conf.LogFormat == "pterm" {
		return slog.New(pterm.NewSlogHandler(pterm.DefaultLogger.WithLevel(ptermLevel)))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
