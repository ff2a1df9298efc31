package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tessro/printq/internal/config"
	"github.com/tessro/printq/internal/errors"
	"github.com/tessro/printq/internal/logging"
	"github.com/tessro/printq/internal/session"
	"github.com/tessro/printq/internal/store"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "printq",
	Short: "Plan a 3D print queue from the command line",
	Long: `Printq keeps a queue of print jobs, prep gaps and wait-until pauses and
projects when each one starts and finishes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.printqrc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	logger, err = logging.NewFromConfig(cfg, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// openStore opens the configured disk store. The configured default gap
// seeds a first run and any blob saved without one.
func openStore() (*store.DiskStore, error) {
	st, err := store.NewDiskStore(cfg.Store.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return st.WithDefaultGap(cfg.Queue.DefaultGapMinutes), nil
}

// openSession loads the saved state. A corrupt blob is reported on stderr
// and the recovered state is used.
func openSession() (*session.Session, error) {
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	s, err := session.Open(st,
		session.WithLogger(logger),
		session.WithDefaultGap(cfg.Queue.DefaultGapMinutes))
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
	}
	return s, nil
}
