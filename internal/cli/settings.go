package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cpucat/cpucat/internal/assets"
	"github.com/cpucat/cpucat/internal/autostart"
	"github.com/cpucat/cpucat/internal/buildinfo"
	"github.com/cpucat/cpucat/internal/catalog"
	"github.com/cpucat/cpucat/internal/config"
	"github.com/cpucat/cpucat/internal/models"
	"github.com/cpucat/cpucat/internal/sysinfo"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show or change settings",
	Long: `Show or change settings.

Keys:
  icon          icon family (see "cpucat settings list")
  theme         dark, light or auto; unset to follow the system
  run_on_start  true or false

A running tray picks up changes immediately.`,
	RunE: runSettingsList,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settings and available icons",
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Restore the default of one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsUnset,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsUnsetCmd)
}

// openPreferences opens the settings with the bundled catalog used to
// validate icon names.
func openPreferences() (*config.Preferences, *catalog.Catalog, error) {
	if err := config.EnsureGlobalDir(); err != nil {
		return nil, nil, fmt.Errorf("failed to create global directory: %w", err)
	}
	store, err := config.OpenDefault()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if _, err := config.MigrateLegacy(store, config.PlatformLegacySources(buildinfo.AppName)...); err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Load(assets.Icons(), catalog.Options{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load icons: %w", err)
	}

	detector := sysinfo.NewThemeDetector()
	detector.Refresh(context.Background())
	prefs := config.NewPreferences(store, autostart.New(buildinfo.AppName), detector, catalog.DefaultIcon)
	return prefs, cat, nil
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	prefs, cat, err := openPreferences()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	theme := prefs.Theme().String()
	if _, ok := prefs.StoredTheme(); !ok {
		theme += styleHint.Render(" (system)")
	}
	runOnStart, err := prefs.RunOnStart()
	if err != nil {
		return fmt.Errorf("failed to read run on start: %w", err)
	}

	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("icon:        "), styleValue.Render(prefs.Icon()))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("theme:       "), styleValue.Render(theme))
	fmt.Fprintf(out, "  %s %s\n", styleLabel.Render("run_on_start:"), styleValue.Render(strconv.FormatBool(runOnStart)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", styleLabel.Render("Available icons:"))
	for _, name := range cat.AvailableIcons() {
		themes := ""
		if cat.SupportsThemes(name) {
			themes = styleHint.Render(fmt.Sprintf(" %v", cat.AvailableThemes(name)))
		}
		fmt.Fprintf(out, "    %s%s\n", name, themes)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", styleHint.Render(prefs.Store().Path()))
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	prefs, _, err := openPreferences()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch args[0] {
	case config.KeyIcon:
		fmt.Fprintln(out, prefs.Icon())
	case config.KeyTheme:
		fmt.Fprintln(out, prefs.Theme())
	case config.KeyRunOnStart:
		on, err := prefs.RunOnStart()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, on)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownKey, args[0])
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	prefs, cat, err := openPreferences()
	if err != nil {
		return err
	}

	switch key {
	case config.KeyIcon:
		if value == catalog.SleepIcon || !cat.Has(value) {
			return fmt.Errorf("%w: %q (available: %v)", catalog.ErrUnknownIcon, value, cat.AvailableIcons())
		}
		err = prefs.SetIcon(value)
	case config.KeyTheme:
		theme, perr := models.ParseTheme(value)
		if perr != nil {
			return perr
		}
		err = prefs.SetTheme(&theme)
	case config.KeyRunOnStart:
		on, perr := strconv.ParseBool(value)
		if perr != nil {
			return fmt.Errorf("run_on_start must be true or false: %w", perr)
		}
		err = prefs.SetRunOnStart(on)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", styleSuccess.Render("✓"), key, value)
	return nil
}

func runSettingsUnset(cmd *cobra.Command, args []string) error {
	prefs, _, err := openPreferences()
	if err != nil {
		return err
	}

	key := args[0]
	switch key {
	case config.KeyIcon:
		err = prefs.Store().Unset(config.KeyIcon)
	case config.KeyTheme:
		err = prefs.SetTheme(nil)
	case config.KeyRunOnStart:
		err = prefs.SetRunOnStart(false)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s reset\n", styleSuccess.Render("✓"), key)
	return nil
}
