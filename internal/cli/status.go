package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cpucat/cpucat/internal/buildinfo"
	"github.com/cpucat/cpucat/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the tray is running",
	RunE:  runStatus,
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running tray",
	RunE:  runStop,
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check status: %w", err)
	}

	if !running || info == nil {
		fmt.Fprintf(out, "%s is %s.\n", buildinfo.AppName, styleWarning.Render("not running"))
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)
	mode := "tray"
	if info.Headless {
		mode = "foreground"
	}

	fmt.Fprintf(out, "%s is %s.\n", buildinfo.AppName, styleSuccess.Render("running"))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("PID:     "), styleValue.Render(fmt.Sprint(info.PID)))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Mode:    "), styleValue.Render(mode))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Uptime:  "), styleValue.Render(uptime.String()))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("Instance:"), styleHint.Render(info.InstanceID))
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsInstanceRunning()
	if err != nil {
		return fmt.Errorf("failed to check status: %w", err)
	}
	if !running || info == nil {
		fmt.Fprintf(out, "%s is not running.\n", buildinfo.AppName)
		return nil
	}

	if err := requestStop(info); err != nil {
		return fmt.Errorf("failed to send stop request: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for range 50 {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsInstanceRunning()
		if err == nil && !stillRunning {
			fmt.Fprintf(out, "%s stopped.\n", buildinfo.AppName)
			return nil
		}
	}

	return fmt.Errorf("%s did not stop within timeout", buildinfo.AppName)
}
