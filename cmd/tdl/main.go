package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tgienger/tdl/internal/config"
	"github.com/tgienger/tdl/internal/logging"
	"github.com/tgienger/tdl/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type program interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
	logFile    string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:           "tdl",
		Short:         "A small terminal todo list",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("tdl {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML (default $XDG_CONFIG_HOME/tdl/config.toml)")
	root.Flags().StringVar(&opts.logLevel, "log-level", "", "override logging.level")
	root.Flags().StringVar(&opts.logFile, "log-file", "", "override logging.file")

	root.AddCommand(newConfigCmd(&opts))
	return root
}

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the resolved config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(opts.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return configCmd
}

// loadConfig resolves and loads the config file, then applies flag overrides
func loadConfig(opts options) (config.Config, error) {
	path, err := config.ResolvePath(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path, config.Default())
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %q: %w", path, err)
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Logging.File = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("starting tui", "version", version, "theme", cfg.UI.Theme, "confirm_delete", cfg.UI.ConfirmDelete)

	app := ui.NewApp(cfg, logger)
	if _, err := programFactory(app).Run(); err != nil {
		logger.Error("tui terminated with error", "err", err)
		return fmt.Errorf("running application: %w", err)
	}

	logger.Info("tui exited")
	return nil
}
