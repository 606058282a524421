// Command formmap extracts the submittable fields of public web forms.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/custodia-labs/formmap/internal/adapters/driven/blob"
	"github.com/custodia-labs/formmap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/formmap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/formmap/internal/adapters/driven/submit"
	"github.com/custodia-labs/formmap/internal/adapters/driving/cli"
	"github.com/custodia-labs/formmap/internal/core/domain"
	"github.com/custodia-labs/formmap/internal/core/ports/driven"
	"github.com/custodia-labs/formmap/internal/core/ports/driving"
	"github.com/custodia-labs/formmap/internal/core/services"
)

// version is set at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap wires adapters and services from the settings in configDir.
func bootstrap(configDir string) (*cli.Services, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	classifier, err := services.NewClassifier(settings.Extract.PlaceholderPatterns...)
	if err != nil {
		return nil, fmt.Errorf("extract.placeholder_patterns: %w", err)
	}

	var (
		history driven.ExtractionStore
		closeFn func() error
	)
	if settings.History.Enabled {
		db, err := sqlite.NewStore(filepath.Join(configDir, "data"))
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		history = db.ExtractionStore()
		closeFn = db.Close
	}

	fetchTimeout := time.Duration(settings.Fetch.TimeoutSeconds) * time.Second
	local := blob.NewFileProvider(os.Stdin)
	remoteFor := func(p domain.FetchProvider) driven.BlobProvider {
		if p == domain.FetchProviderBrowser {
			return blob.NewBrowserProvider(fetchTimeout)
		}
		return blob.NewHTTPProvider(fetchTimeout, settings.Fetch.UserAgent)
	}

	newExtract := func(opts cli.ExtractOptions) (driving.ExtractService, error) {
		provider := opts.Provider
		if provider == "" {
			provider = settings.Fetch.Provider
		}
		var store driven.ExtractionStore
		if opts.History {
			store = history
		}
		return services.NewExtractService(blob.NewRouter(local, remoteFor(provider)), classifier, store), nil
	}

	planExtract, err := newExtract(cli.ExtractOptions{History: true})
	if err != nil {
		return nil, err
	}

	submitter := submit.NewHTTPSubmitter(
		time.Duration(settings.Submit.TimeoutSeconds)*time.Second,
		settings.Submit.RatePerSecond,
		settings.Fetch.UserAgent,
	)

	s := &cli.Services{
		NewExtract: newExtract,
		Plan:       services.NewPlanService(planExtract, file.NewPlanStore()),
		Submit:     services.NewSubmitService(submitter),
		Settings:   settingsService,
		ConfigPath: configStore.Path(),
		Close:      closeFn,
	}
	if history != nil {
		s.History = services.NewHistoryService(history)
	}
	return s, nil
}
