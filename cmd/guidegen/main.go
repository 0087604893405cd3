package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/guidegen/internal/backend"
	"github.com/jask/guidegen/internal/config"
	"github.com/jask/guidegen/internal/download"
	"github.com/jask/guidegen/internal/guides"
	"github.com/jask/guidegen/internal/logging"
	"github.com/jask/guidegen/internal/progress"
	"github.com/jask/guidegen/internal/tui"
)

var (
	configPath string
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "guidegen [file.csv]",
	Short: "Turn a product CSV into buying guides",
	Long: `Upload a CSV of product URLs to the guide generation server, browse the
returned guides and download them as JSON or TXT.

Examples:
  guidegen
  guidegen ./products.csv
  guidegen generate ./products.csv --json --out ./exports`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		initial := ""
		if len(args) == 1 {
			initial = args[0]
		}
		return runTUI(cmd.Context(), initial)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/guidegen/config.toml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend base URL, overrides server.base_url")
	rootCmd.AddCommand(generateCmd, configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var shown reportedError
		if !errors.As(err, &shown) {
			printError("%v", err)
		}
		stop()
		os.Exit(1)
	}
}

// reportedError marks a failure the user has already been told about.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

// env is everything a command builds from config before doing work.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	client *backend.Client
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if serverURL != "" {
		cfg.Server.BaseURL = serverURL
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		logger: logger,
		client: backend.New(cfg.Server, nil),
	}, nil
}

func (e *env) simulator() *progress.Simulator {
	p := e.cfg.Progress
	return progress.New(p.Interval, p.Step, p.Cap)
}

func runTUI(ctx context.Context, initial string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.logger.Sync() }()

	e.logger.Info("starting", zap.String("server", e.client.BaseURL()))
	app := tui.New(ctx, tui.Deps{
		Backend:     e.client,
		Session:     guides.NewSession(),
		Saver:       download.Saver{Dir: e.cfg.Download.Dir},
		Logger:      e.logger,
		Progress:    e.simulator(),
		ToastTTL:    e.cfg.UI.ToastDuration,
		Server:      e.client.BaseURL(),
		InitialPath: initial,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
