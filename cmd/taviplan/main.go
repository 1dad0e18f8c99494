package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/openmpr/taviplan/internal/config"
	"github.com/openmpr/taviplan/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taviplan",
	Short: "MPR planning tool for transcatheter aortic valve implantation",
	Long: `taviplan is a multi-planar reconstruction (MPR) planning tool for
TAVI procedures. It shows three synchronized slice views with a shared
crosshair, cusp and centerline landmarking, annulus fitting, and the
aortic centerline curve.`,
	Version: version.GetFullVersion(),
}

var (
	flagConfig  string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "TOML tuning file overriding the built-in defaults")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "taviplan",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func loadConfig() (config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(flagConfig)
}
