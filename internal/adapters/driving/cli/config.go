package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
)

// settingKeys lists the keys accepted by config get/set, in display order.
var settingKeys = []string{
	"fetch.provider",
	"fetch.timeout_seconds",
	"fetch.user_agent",
	"extract.placeholder_patterns",
	"submit.rate_per_second",
	"submit.timeout_seconds",
	"history.enabled",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage settings",
	Long: `View and change settings stored in config.toml.

Keys:
  fetch.provider                http or browser
  fetch.timeout_seconds         page download timeout
  fetch.user_agent              User-Agent header for downloads and posts
  extract.placeholder_patterns  comma-separated regular expressions for
                                option labels to drop
  submit.rate_per_second        maximum submissions per second
  submit.timeout_seconds        per-submission timeout
  history.enabled               save extractions to the history database`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show all settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:     "set <key> <value>",
	Short:   "Change one setting",
	Example: `  formmap config set fetch.provider browser`,
	Args:    cobra.ExactArgs(2),
	RunE:    runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := requireServices()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.ConfigPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func settingsService() (driving.SettingsService, error) {
	s, err := requireServices()
	if err != nil {
		return nil, err
	}
	if s.Settings == nil {
		return nil, errors.New("settings service not configured")
	}
	return s.Settings, nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, key := range settingKeys {
		value, _ := settingValue(settings, key)
		fmt.Fprintf(out, "%-30s %s\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	value, err := settingValue(settings, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if err := applySetting(settings, args[0], args[1]); err != nil {
		return err
	}
	if err := svc.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	value, _ := settingValue(settings, args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("%w: unknown setting %q (known: %s)", domain.ErrInvalidInput, key, strings.Join(settingKeys, ", "))
}

func settingValue(s *domain.AppSettings, key string) (string, error) {
	switch key {
	case "fetch.provider":
		return s.Fetch.Provider.String(), nil
	case "fetch.timeout_seconds":
		return strconv.Itoa(s.Fetch.TimeoutSeconds), nil
	case "fetch.user_agent":
		return s.Fetch.UserAgent, nil
	case "extract.placeholder_patterns":
		return strings.Join(s.Extract.PlaceholderPatterns, ","), nil
	case "submit.rate_per_second":
		return strconv.FormatFloat(s.Submit.RatePerSecond, 'g', -1, 64), nil
	case "submit.timeout_seconds":
		return strconv.Itoa(s.Submit.TimeoutSeconds), nil
	case "history.enabled":
		return strconv.FormatBool(s.History.Enabled), nil
	}
	return "", unknownKey(key)
}

func applySetting(s *domain.AppSettings, key, value string) error {
	value = strings.TrimSpace(value)
	invalid := func(err error) error {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	switch key {
	case "fetch.provider":
		s.Fetch.Provider = domain.FetchProvider(value)
	case "fetch.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(err)
		}
		s.Fetch.TimeoutSeconds = n
	case "fetch.user_agent":
		s.Fetch.UserAgent = value
	case "extract.placeholder_patterns":
		var patterns []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		s.Extract.PlaceholderPatterns = patterns
	case "submit.rate_per_second":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return invalid(err)
		}
		s.Submit.RatePerSecond = f
	case "submit.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return invalid(err)
		}
		s.Submit.TimeoutSeconds = n
	case "history.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return invalid(err)
		}
		s.History.Enabled = b
	default:
		return unknownKey(key)
	}
	return nil
}
