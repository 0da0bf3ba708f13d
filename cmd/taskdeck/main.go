package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/h0rv/taskdeck/internal/api"
	"github.com/h0rv/taskdeck/internal/auth"
	"github.com/h0rv/taskdeck/internal/config"
	"github.com/h0rv/taskdeck/internal/dashboard"
	"github.com/h0rv/taskdeck/internal/store"
	"github.com/h0rv/taskdeck/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// CLI flags
	configFlag   string
	baseURLFlag  string
	logLevelFlag string
	logFileFlag  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "Terminal dashboard for your task board service",
		Long: `taskdeck is a read-only terminal dashboard for a task management service.

Browse projects, open a board as a Kanban of columns and cards, and read
task details with rendered descriptions.

Authentication:
  1. Environment variable: Set TASKDECK_TOKEN (preferred)
  2. Config file: Set api.token in the config file

Configuration is read from $TASKDECK_CONFIG or the user config directory.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file path (default $TASKDECK_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Service base URL. Overrides the config file.")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Log file path")

	rootCmd.AddCommand(checkCmd(), configCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newFileLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	orch, err := newOrchestrator(cfg, path, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger.Info("starting", "base_url", cfg.API.BaseURL)

	model := tui.NewModel(ctx, store.New(), orch, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// checkCmd runs the startup loads once without the UI and prints what came
// back. Useful for verifying credentials and connectivity.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify credentials and print what the dashboard would load",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}
			logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "taskdeck"})
			logger.SetLevel(levelOf(cfg))

			orch, err := newOrchestrator(cfg, path, logger)
			if err != nil {
				return err
			}

			s := store.New()
			ctx := context.Background()
			start := time.Now()
			for req, more := orch.Startup(), true; more; {
				begun, ok := orch.Begin(s, req)
				if !ok {
					break
				}
				req, more = orch.Complete(s, orch.Fetch(ctx, begun))
			}
			if msg := s.Err(); msg != "" {
				return fmt.Errorf("startup load failed: %s", msg)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Projects (%d):\n", len(s.Projects()))
			for _, p := range s.Projects() {
				fmt.Fprintf(out, "  %s (ID=%s)\n", p.Title, p.ID)
			}
			fmt.Fprintf(out, "\nUsers: %d\nStickers: %d\nLoaded in %s\n",
				s.Users().Len(), s.Stickers().Len(), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
}

func configCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	c.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config and log file paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config: %s\nlog:    %s\n", path, cfg.Logging.File)
			return nil
		},
	})
	return c
}

// loadConfig reads the config file and applies env and flag overrides, in
// that order.
func loadConfig() (config.Config, string, error) {
	path := configFlag
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, config.Default())
	if err != nil {
		return config.Config{}, path, err
	}
	cfg.ApplyEnv()

	if baseURLFlag != "" {
		cfg.API.BaseURL = baseURLFlag
	}
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}
	if logFileFlag != "" {
		cfg.Logging.File = logFileFlag
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, path, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, path, nil
}

func newOrchestrator(cfg config.Config, path string, logger *log.Logger) (*dashboard.Orchestrator, error) {
	token, err := auth.GetToken(
		&auth.EnvProvider{},
		&auth.StaticProvider{Token: cfg.API.Token, Source: path},
	)
	if err != nil {
		return nil, err
	}

	client, err := api.New(api.Options{
		BaseURL:  cfg.API.BaseURL,
		Token:    token,
		PageSize: cfg.API.PageSize,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return dashboard.NewOrchestrator(client, logger, cfg.Timeout()), nil
}

// newFileLogger logs to the configured file. The terminal belongs to the UI.
func newFileLogger(cfg config.Config) (*log.Logger, func(), error) {
	if cfg.Logging.File == "" {
		return log.New(io.Discard), func() {}, nil
	}
	if err := config.EnsureDir(cfg.Logging.File); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		Prefix:          "taskdeck",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
		Level:           levelOf(cfg),
	})
	return logger, func() { _ = f.Close() }, nil
}

func levelOf(cfg config.Config) log.Level {
	level, err := log.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
