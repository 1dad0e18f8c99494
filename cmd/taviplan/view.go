package main

import (
	"fmt"
	"os"
	"time"

	"github.com/openmpr/taviplan/internal/app"
	"github.com/openmpr/taviplan/internal/config"
	"github.com/openmpr/taviplan/internal/volume"
	"github.com/openmpr/taviplan/pkg/watcher"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [volume.vol]",
	Short: "Open the interactive planning window",
	Long: `Open the planning window over a .vol volume. Without an argument a
synthetic aortic-root phantom is used, which is enough to exercise the
crosshair, landmarking and annulus workflow.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	vol, err := loadVolume(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading volume: %v\n", err)
		os.Exit(1)
	}

	var reload chan config.Config
	if flagConfig != "" {
		reload = make(chan config.Config, 1)
		w, err := watcher.New(300*time.Millisecond, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer w.Close()
		if err := w.Watch(flagConfig, func(path string) {
			next, err := config.Load(path)
			if err != nil {
				logger.Warn("config reload rejected", "err", err)
				return
			}
			select {
			case reload <- next:
			default:
			}
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		w.Start()
		logger.Info("watching configuration", "file", flagConfig)
	}

	if err := app.Run(cfg, vol, logger, reload); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadVolume(args []string) (*volume.Volume, error) {
	if len(args) == 0 {
		return volume.DefaultPhantom(), nil
	}
	return volume.Read(args[0])
}
