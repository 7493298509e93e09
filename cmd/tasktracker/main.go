// Package main implements the tasktracker CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/task-tracker/internal/app"
	"github.com/nhle/task-tracker/internal/model"
	"github.com/nhle/task-tracker/internal/store"
	"github.com/nhle/task-tracker/internal/tracker"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "tasktracker",
	Short:        "Track tasks across active, completed, and deleted tabs",
	SilenceUsage: true,
	RunE:         runTUI,
}

var (
	configPath string
	driverFlag string
	dataFlag   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "Config file path")
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "Storage driver (sqlite, file, memory)")
	rootCmd.PersistentFlags().StringVar(&dataFlag, "data", "", "Database or JSON file path")
}

// loadConfig reads the config file and applies the persistent flag
// overrides.
func loadConfig() (*model.AppConfig, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if driverFlag != "" {
		cfg.Storage.Driver = driverFlag
	}
	if dataFlag != "" {
		cfg.Storage.Path = dataFlag
	}
	return cfg, nil
}

// openTracker opens the configured store and returns a tracker over it
// with the persisted tasks loaded. The caller closes the returned KV.
func openTracker(ctx context.Context, cfg *model.AppConfig) (*tracker.Tracker, store.KV, error) {
	kv, err := store.Open(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}

	t := tracker.New(store.NewTaskStore(kv))
	if err := t.Load(ctx); err != nil {
		_ = kv.Close()
		return nil, nil, err
	}
	return t, kv, nil
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; log to a file or not at all.
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "tasktracker")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	kv, err := store.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer kv.Close()

	t := tracker.New(store.NewTaskStore(kv))
	tab, _ := model.ParseTab(cfg.Display.DefaultTab)

	p := tea.NewProgram(app.New(t, tab), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
