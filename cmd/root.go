// Package cmd implements the iexpense CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/theirongolddev/iexpense/internal/config"
	"github.com/theirongolddev/iexpense/internal/expenses"
	"github.com/theirongolddev/iexpense/internal/logging"
	"github.com/theirongolddev/iexpense/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagDB       string
	flagType     string
	flagQuiet    bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:               "iexpense",
	Short:             "Personal expense tracker",
	Long:              "Track expenses against a budget, break them down by type, and export them.",
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
	RunE:              runList,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default from config or $IEXPENSE_DB)")
	rootCmd.PersistentFlags().StringVarP(&flagType, "type", "t", "", "Filter to an expense type (exact match)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

var (
	cfg    config.Config
	logger *slog.Logger
)

// initRuntime loads .env, the config file, and logging before any command runs.
func initRuntime(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "  Ignoring .env: %v\n", err)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
	}
	cfg = loaded

	level := config.GetLogLevel(cfg)
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger = logging.Setup(logging.Config{
		Level: logging.ParseLevel(level),
		JSON:  cfg.Log.JSON,
	})
	return nil
}

// session is the open database and expense store for one command.
type session struct {
	kv       *store.KV
	store    *expenses.Store
	currency string
}

// openSession opens the database and loads the expense store. Loading never
// fails; only opening the database can.
func openSession() (*session, error) {
	dbPath := flagDB
	if dbPath == "" {
		dbPath = config.GetDBPath(cfg)
	}

	kv, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	logger.Debug("opened database", "path", dbPath)

	return &session{
		kv:       kv,
		store:    expenses.Load(kv, logger),
		currency: config.GetCurrencySymbol(cfg),
	}, nil
}

func (s *session) Close() {
	if err := s.kv.Close(); err != nil {
		logger.Warn("closing database", "error", err)
	}
}

// warnIfUnsaved tells the user when the last write did not reach the database.
func (s *session) warnIfUnsaved() {
	if err := s.store.PersistErr(); err != nil {
		fmt.Fprintf(os.Stderr, "\n  Warning: changes could not be saved: %v\n", err)
	}
}

func info(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Printf(format, args...)
}
