package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yukikurage/taskboard-api/internal/config"
	"github.com/yukikurage/taskboard-api/internal/logger"
	"github.com/yukikurage/taskboard-api/internal/server"
)

var flags struct {
	port      string
	storage   string
	sqliteDSN string
	seedFile  string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Task and category REST API",
	Long: `taskboard serves a small task board over HTTP: categories, tasks
filtered by category, search and completion, and placeholder users.
State lives in memory and is lost on exit.`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flags.port, "port", "p", "", "port to listen on (env PORT)")
	f.StringVar(&flags.storage, "storage", "", "storage driver: memory or sqlite (env STORAGE_DRIVER)")
	f.StringVar(&flags.sqliteDSN, "sqlite-dsn", "", "SQLite DSN for the sqlite driver (env SQLITE_DSN)")
	f.StringVar(&flags.seedFile, "seed-file", "", "YAML file with the initial categories (env SEED_FILE)")
	f.StringVar(&flags.logLevel, "log-level", "", "log level (env LOG_LEVEL)")
	f.StringVar(&flags.logFormat, "log-format", "", "log format: console or json (env LOG_FORMAT)")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// applyFlags overrides environment settings with explicitly set flags
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	overrides := []struct {
		name  string
		value string
		dest  *string
	}{
		{"port", flags.port, &cfg.Port},
		{"storage", flags.storage, &cfg.StorageDriver},
		{"sqlite-dsn", flags.sqliteDSN, &cfg.SQLiteDSN},
		{"seed-file", flags.seedFile, &cfg.SeedFile},
		{"log-level", flags.logLevel, &cfg.LogLevel},
		{"log-format", flags.logFormat, &cfg.LogFormat},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.name) {
			*o.dest = o.value
		}
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	applyFlags(cmd, cfg)

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to start")
		return err
	}

	return srv.Run(ctx)
}
