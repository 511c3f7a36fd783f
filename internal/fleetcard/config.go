package fleetcard

import (
	"io"

	"cloupeer.io/fleetcard/internal/fleetcard/catalog"
	"cloupeer.io/fleetcard/internal/fleetcard/session"
	"cloupeer.io/fleetcard/internal/fleetcard/storage"
	"cloupeer.io/fleetcard/internal/fleetcard/store"
	"cloupeer.io/fleetcard/pkg/log"
	"cloupeer.io/fleetcard/pkg/options"
)

type Config struct {
	OutputOptions  *options.OutputOptions
	CatalogOptions *options.CatalogOptions
	S3Options      *options.S3Options
}

// NewGenerator wires a wizard reading answers from in and talking on out.
func (cfg *Config) NewGenerator(in io.Reader, out io.Writer) (*Generator, error) {
	g := &Generator{
		prompter: session.NewTerminal(in, out),
		out:      out,
		store:    store.NewOsStore(cfg.OutputOptions.Dir),
		catalog:  catalog.Builtin(),
		seedID:   cfg.CatalogOptions.Seed,
	}

	if cfg.CatalogOptions.File != "" {
		file, err := catalog.Open(cfg.CatalogOptions.File, log.Logr().WithName("catalog"))
		if err != nil {
			return nil, err
		}
		g.catalog = file
		if cfg.CatalogOptions.Watch {
			g.watcher = file
		}
	}

	if cfg.S3Options.Enabled {
		provider, err := storage.NewMinIOProvider(cfg.S3Options)
		if err != nil {
			return nil, err
		}
		g.uploader = provider
	}

	return g, nil
}
