// Package cli implements the cpucat command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cpucat/cpucat/internal/app"
	"github.com/cpucat/cpucat/internal/buildinfo"
	"github.com/cpucat/cpucat/internal/config"
)

var (
	flagForeground bool
	flagDebug      bool
	flagLogFile    string
)

var rootCmd = &cobra.Command{
	Use:   "cpucat",
	Short: "Animated CPU usage monitor for the system tray",
	Long: `CPUCat shows a small animated icon in the system tray that runs faster
as CPU usage grows. Run without a command to start the tray.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(config.NewLogger(flagDebug, os.Stderr))
	},
	RunE: runTray,
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "%s %v\n", styleError.Render("Error:"), err)
	}
	return err
}

func init() {
	rootCmd.Flags().BoolVar(&flagForeground, "foreground", false, "Run without a tray icon, logging to the terminal")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.cpucat/logs/cpucat.log)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(versionCmd)
}

func runTray(cmd *cobra.Command, args []string) error {
	logFile, err := openLogFile()
	if err != nil {
		slog.Warn("Logging to terminal only", "error", err)
	} else {
		defer logFile.Close()
		slog.SetDefault(config.NewLogger(flagDebug, os.Stderr, logFile))
	}

	slog.Info("Starting", "app", buildinfo.AppName, "version", buildinfo.Version, "commit", buildinfo.CommitHash)

	a, err := app.New(app.Options{
		Headless:      flagForeground,
		HandleSignals: true,
	})
	if err != nil {
		return err
	}
	if err := a.Run(cmd.Context()); err != nil {
		return fmt.Errorf("%s stopped with error: %w", buildinfo.AppName, err)
	}
	return nil
}

func openLogFile() (*config.LogFile, error) {
	path := flagLogFile
	if path == "" {
		var err error
		if path, err = config.GlobalLogFile(); err != nil {
			return nil, err
		}
	}
	return config.OpenLog(path, config.DefaultLogRotation())
}
