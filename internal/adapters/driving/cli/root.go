// Package cli implements the formmap command line interface with cobra.
// Commands are registered in init() and reach the core through the
// driving ports injected with SetServices or built lazily by the
// bootstrap hook.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
	"github.com/custodia-labs/formmap/internal/logger"
)

// version is overridden at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

// ExtractOptions selects how an extract service is built.
type ExtractOptions struct {
	// Provider overrides the configured fetch provider when set.
	Provider domain.FetchProvider

	// History saves extractions when true and history is enabled.
	History bool
}

// Services holds the driving ports the commands call.
type Services struct {
	// NewExtract builds an extract service for the given options.
	NewExtract func(opts ExtractOptions) (driving.ExtractService, error)

	// History is nil when history is disabled.
	History  driving.HistoryService
	Plan     driving.PlanService
	Submit   driving.SubmitService
	Settings driving.SettingsService

	// ConfigPath is the path of the settings file.
	ConfigPath string

	// Close releases resources such as the history database.
	Close func() error
}

// Bootstrap builds services once flags are parsed.
type Bootstrap func(configDir string) (*Services, error)

var (
	appServices *Services
	bootstrap   Bootstrap

	verbose   bool
	configDir string
)

var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "formmap",
	Short: "Extract the submittable fields of public web forms",
	Long: `formmap reads the data a public form embeds in its page and prints
the field identifiers it accepts, with the allowed options of each
multiple-choice question and which fields take free text.

It can also build weighted response plans from those fields and post
generated responses.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if appServices != nil || bootstrap == nil {
			return nil
		}
		s, err := bootstrap(configDir)
		if err != nil {
			return err
		}
		appServices = s
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.formmap)")
}

// SetServices injects ready-made services.
func SetServices(s *Services) {
	appServices = s
}

// SetBootstrap registers the hook that builds services after flag parsing.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if appServices != nil && appServices.Close != nil {
		if cerr := appServices.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing: %w", cerr)
		}
	}
	return err
}

func requireServices() (*Services, error) {
	if appServices == nil {
		return nil, errNotConfigured
	}
	return appServices, nil
}

// defaultExtract builds the extract service for the configured provider.
func defaultExtract(history bool) (driving.ExtractService, error) {
	s, err := requireServices()
	if err != nil {
		return nil, err
	}
	if s.NewExtract == nil {
		return nil, errors.New("extract service not configured")
	}
	return s.NewExtract(ExtractOptions{History: history})
}
