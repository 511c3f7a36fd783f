package app

import (
	"fmt"
	"os"

	genericapiserver "k8s.io/apiserver/pkg/server"

	"cloupeer.io/fleetcard/cmd/fleetcard/app/options"
	"cloupeer.io/fleetcard/internal/pkg/metrics"
	"cloupeer.io/fleetcard/pkg/app"
	"cloupeer.io/fleetcard/pkg/log"
)

const (
	commandName = "fleetcard"
	commandDesc = `The Fleet Card Generator asks for the details of one vehicle at a time and
writes a vehicle-status-card YAML file for each of them. Cards can also be
uploaded to an S3-compatible bucket, and the first vehicle can be pre-filled
from a vehicle catalog.`
)

func NewApp() *app.App {
	opts := options.NewWizardOptions()
	application := app.NewApp(
		commandName,
		"Generate vehicle status cards interactively",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.WizardOptions) app.RunFunc {
	return func() error {
		if err := log.Init(opts.Log); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer log.Sync() //nolint:errcheck

		log.Info("Setting up Fleet Card Generator", "output", opts.OutputOptions.Dir)

		ctx := genericapiserver.SetupSignalContext()

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		generator, err := cfg.NewGenerator(os.Stdin, os.Stdout)
		if err != nil {
			return fmt.Errorf("failed to create generator: %w", err)
		}

		runErr := generator.Run(ctx)

		if path := opts.MetricsOptions.Textfile; path != "" {
			if err := metrics.WriteTextfile(path); err != nil {
				log.Error(err, "Failed to write metrics textfile", "path", path)
			}
		}

		return runErr
	}
}
