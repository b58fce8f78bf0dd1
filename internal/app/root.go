package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/okreads/internal/api"
	"github.com/blackwell-systems/okreads/internal/cache"
	"github.com/blackwell-systems/okreads/internal/config"
	"github.com/blackwell-systems/okreads/internal/logger"
	"github.com/blackwell-systems/okreads/internal/tui"
	"github.com/blackwell-systems/okreads/internal/util"
)

var (
	cfg       *config.Config
	client    *api.Client
	cacheMgr  *cache.Manager
	log       *slog.Logger
	logCloser io.Closer

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagLogLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "okreads",
	Short: "Keep a reading list of books you want to read",
	Long: `okreads searches for books and keeps your personal reading list
on the okreads backend.

Adding or removing a book in the interactive view shows an undo prompt
for a few seconds.

Run 'okreads' with no arguments to launch the interactive view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.ShouldUseTUI(cmd) {
			return runTUI(cmd.Context())
		}
		return cmd.Help()
	},
}

// Execute is the entry point called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logCloser != nil {
		_ = logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/okreads/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log.level)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagLogLevel != "" {
			cfg.Log.Level = flagLogLevel
		}

		// The TUI owns the terminal, so it only logs to a file.
		interactive := cmd == rootCmd && tui.ShouldUseTUI(cmd)
		if err := setupLogger(interactive); err != nil {
			return err
		}

		client = api.New(cfg.API.BaseURL, cfg.API.Timeout, api.WithRateLimit(cfg.API.RateLimit))
		cacheMgr = cache.New(cfg.Cache.Dir)
		log.Debug("config loaded", "base_url", cfg.API.BaseURL, "cache_dir", cfg.Cache.Dir)
		return nil
	}

	rootCmd.AddCommand(
		newListCmd(),
		newSearchCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newFinishCmd(),
		newStatusCmd(),
		newCacheCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
}

func setupLogger(interactive bool) error {
	level := logger.ParseLevel(cfg.Log.Level)
	switch {
	case cfg.Log.File != "":
		l, closer, err := logger.OpenFile(cfg.Log.File, cfg.Log.Format, level)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		log, logCloser = l, closer
	case interactive:
		log = logger.Discard()
	default:
		log = logger.New(logger.Config{Writer: os.Stderr, Format: cfg.Log.Format, Level: level})
	}
	return nil
}

// runTUI runs the interactive view with the full effect pipeline,
// including the offline snapshot.
func runTUI(ctx context.Context) error {
	s := newSession(client, cacheMgr, cfg.SnackBar.Duration, log)
	s.start(ctx)
	defer func() {
		if err := s.stop(); err != nil {
			log.Warn("stopping effects", "error", err)
		}
	}()
	return tui.Run(ctx, s.store, s.bar)
}

// ok prints a green success line.
func ok(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, color.CyanString(fmt.Sprintf(format, a...)))
}
