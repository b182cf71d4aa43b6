// Command magcot renders annotated GUI documents and keeps snapshots of them.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/magcot/magcot/internal/config"
	"github.com/magcot/magcot/internal/logging"
	"github.com/magcot/magcot/pkg/resource"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const AppName = "magcot"

// app holds what the commands share once the root command has set up
// configuration and logging.
type app struct {
	configDir  string
	namespaces []string
	logLevel   string

	sessionStart time.Time
	slogManager  *logging.SlogManager
	logger       *slog.Logger
	dbLogger     zerolog.Logger
	logFile      *os.File
	registry     *resource.Registry
	stderr       io.Writer
}

func newApp() *app {
	return &app{
		sessionStart: time.Now(),
		slogManager:  logging.NewSlogManager(),
		logger:       slog.Default(),
		dbLogger:     zerolog.Nop(),
		stderr:       os.Stderr,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           AppName,
		Short:         "Render annotated GUI textures as documents, statements and overlays",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.stderr = cmd.ErrOrStderr()
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configDir, "config", ".", "directory holding "+config.FileName)
	flags.StringArrayVar(&a.namespaces, "namespace", nil, "define a resource namespace as ns=path/to/assets (repeatable)")
	flags.StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(newRenderCmd(a), newArchiveCmd(a))
	return root
}

// setup loads the configuration, starts logging and defines namespaces.
func (a *app) setup() error {
	found, err := config.LoadOrDefault(a.configDir)
	if err != nil {
		return err
	}

	level := config.GetString("logLevel")
	if a.logLevel != "" {
		level = a.logLevel
	}

	opts := logging.Options{
		Console: a.stderr,
		Level:   level,
		Context: logging.Elapsed(a.sessionStart),
	}
	if dir := config.GetString("logsDir"); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
		path := logging.LogFilePath(dir, AppName, a.sessionStart)
		a.logFile, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		opts.File = a.logFile
	}
	a.slogManager.Setup(opts)
	a.logger = a.slogManager.Logger()

	zlvl, err := zerolog.ParseLevel(level)
	if err != nil || zlvl == zerolog.NoLevel {
		zlvl = zerolog.InfoLevel
	}
	var dbOut io.Writer = zerolog.ConsoleWriter{Out: a.stderr, NoColor: true, TimeFormat: time.RFC3339}
	if a.logFile != nil {
		dbOut = zerolog.MultiLevelWriter(dbOut, a.logFile)
	}
	a.dbLogger = zerolog.New(dbOut).Level(zlvl).With().Timestamp().Str("component", "archive").Logger()

	if found {
		a.logger.Debug("Loaded config", "dir", a.configDir)
	} else {
		a.logger.Debug("No config file, using defaults", "dir", a.configDir)
	}

	a.registry, err = buildRegistry(config.GetNamespaces(), a.namespaces)
	return err
}

func (a *app) teardown() error {
	if a.logFile == nil {
		return nil
	}
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

func main() {
	a := newApp()
	root := newRootCmd(a)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		_ = a.teardown()
		os.Exit(1)
	}
}
