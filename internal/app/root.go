package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/inspirehub/internal/catalog"
	"github.com/blackwell-systems/inspirehub/internal/config"
	"github.com/blackwell-systems/inspirehub/internal/controller"
	"github.com/blackwell-systems/inspirehub/internal/gateway"
	"github.com/blackwell-systems/inspirehub/internal/gemini"
	"github.com/blackwell-systems/inspirehub/internal/library"
	"github.com/blackwell-systems/inspirehub/internal/logging"
	"github.com/blackwell-systems/inspirehub/internal/metrics"
	"github.com/blackwell-systems/inspirehub/internal/reward"
	"github.com/blackwell-systems/inspirehub/internal/share"
	"github.com/blackwell-systems/inspirehub/internal/store"
	"github.com/blackwell-systems/inspirehub/internal/tui"
	"github.com/blackwell-systems/inspirehub/internal/unified"
	"github.com/blackwell-systems/inspirehub/internal/util"
)

var (
	cfg    *config.Config
	logger *log.Logger
	ctrl   *controller.Controller
	lib    *library.Library

	// out receives command output; tests replace it.
	out io.Writer = os.Stdout

	// clip is the clipboard copy writes to; tests replace it.
	clip share.Clipboard = share.SystemClipboard{}

	closers      []io.Closer
	stopMetrics  context.CancelFunc
	metricsErrCh chan error

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagMetricsAddr   string
)

var rootCmd = &cobra.Command{
	Use:   "inspirehub",
	Short: "Inspirational quotes and wallpapers, with AI search and generation",
	Long: `inspirehub browses a curated catalog of inspirational quotes and
wallpapers. Favorite what you like, unlock premium items by watching a
short ad, search with natural language and generate new wallpapers with AI.

AI features need a Gemini API key in GEMINI_API_KEY.

Run 'inspirehub' with no arguments to launch the interactive app.`,
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
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	// PersistentPostRunE is skipped when a command fails.
	if cerr := teardown(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/inspirehub/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running (e.g. :9090)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		// init and version run without touching storage.
		if cmd.Name() == "init" || cmd.Name() == "version" {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				cfg = config.Default()
			}
			return nil
		}

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return setup(cmd.Context())
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return teardown()
	}

	// Register sub-commands.
	rootCmd.AddCommand(
		newInitCmd(),
		newVersionCmd(),
		newCategoriesCmd(),
		newBrowseCmd(),
		newQuoteCmd(),
		newSearchCmd(),
		newGenerateCmd(),
		newFavoritesCmd(),
		newUnlockCmd(),
		newDownloadCmd(),
		newCopyCmd(),
		newThemeCmd(),
		newCatalogCmd(),
	)
}

// setup builds the component graph from cfg.
func setup(ctx context.Context) error {
	var err error
	logger, err = openLogger()
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	kv, err := store.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	closers = append(closers, kv)
	prefs := store.NewPrefs(kv)

	lib = library.New(cat, prefs, library.Options{
		PersistUnlocks: cfg.Unlock.Persist,
		Logger:         logger,
	})

	client := gemini.New(gemini.Options{
		APIKey:            cfg.AI.APIKey,
		APIBase:           cfg.AI.APIBase,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
		Logger:            logger,
	})
	gw := gateway.New(client, cat, prefs, lib, gateway.Options{
		TextModel:  cfg.AI.TextModel,
		ImageModel: cfg.AI.ImageModel,
		Timeout:    cfg.AI.Timeout,
		Logger:     logger,
	})

	ctrl = controller.New(controller.Deps{
		Catalog: cat,
		Prefs:   prefs,
		Library: lib,
		AI:      gw,
		Logger:  logger,
		AdTick:  reward.TickFor(cfg.Unlock.AdDuration),

		Downloader:  &share.Downloader{},
		Clipboard:   clip,
		DownloadDir: cfg.Download.Dir,
	})

	if flagMetricsAddr != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		mctx, cancel := context.WithCancel(ctx)
		stopMetrics = cancel
		metricsErrCh = make(chan error, 1)
		go func() { metricsErrCh <- metrics.Serve(mctx, flagMetricsAddr) }()
		logger.Info("serving metrics", "addr", flagMetricsAddr)
	}

	logger.Debug("ready", "storage", cfg.Storage.Backend, "ai", client.Available())
	return nil
}

func openLogger() (*log.Logger, error) {
	if cfg.Log.File == "" {
		return logging.Discard(), nil
	}
	l, f, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		// Logging is diagnostic only.
		warn("Logging disabled: %v", err)
		return logging.Discard(), nil
	}
	closers = append(closers, f)
	return l, nil
}

func teardown() error {
	if ctrl != nil {
		ctrl.Close()
		ctrl = nil
	}
	if stopMetrics != nil {
		stopMetrics()
		if err := <-metricsErrCh; err != nil {
			warn("Metrics server: %v", err)
		}
		stopMetrics = nil
	}
	var firstErr error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	closers = nil
	return firstErr
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Fprintln(out, color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Fprintln(out, color.CyanString(fmt.Sprintf(format, a...)))
}

// printJSON writes v as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// runTUI launches the interactive app over the wired controller.
func runTUI(ctx context.Context) error {
	return unified.Run(ctx, ctrl)
}
