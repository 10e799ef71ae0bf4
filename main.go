package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/almonk/arbor/config"
	"github.com/almonk/arbor/logger"
	"github.com/almonk/arbor/theme"
	"github.com/almonk/arbor/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	configPath string
	themeName  string
	debug      bool
	noWatch    bool
)

var rootCmd = &cobra.Command{
	Use:   "arbor <document>",
	Short: "Browse and rearrange element trees in the terminal",
	Long: `arbor opens a page document (YAML or JSON) as a tree. Drag elements
with the mouse to move them; drag left or right while moving to change how
deep they land. Changes are written back to the document immediately.

Example:
  arbor page.yaml
  arbor init page.yaml && arbor page.yaml
  arbor print page.json`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/arbor/config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs to $XDG_STATE_HOME/arbor/logs")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Ghostty theme name or path (overrides config)")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Don't reload the document when it changes on disk")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func initLogging() (io.Closer, error) {
	return logger.Init(logger.Options{Enabled: debug, Level: slog.LevelDebug})
}

func runTUI(path string) error {
	closer, err := initLogging()
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	th, err := theme.Load(cfg.Theme)
	if err != nil {
		return err
	}

	model, err := ui.New(ui.Options{Path: path, Config: cfg, Theme: th, Watch: !noWatch})
	if err != nil {
		return err
	}
	defer model.Close()
	logger.Info("opened document", "path", path)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}
