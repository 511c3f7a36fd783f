// Package fleetcard runs the vehicle status card wizard.
package fleetcard

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"cloupeer.io/fleetcard/internal/fleetcard/catalog"
	"cloupeer.io/fleetcard/internal/fleetcard/session"
	"cloupeer.io/fleetcard/internal/fleetcard/storage"
	"cloupeer.io/fleetcard/internal/fleetcard/store"
	"cloupeer.io/fleetcard/pkg/log"
)

// watcher reloads a catalog until ctx is done.
type watcher interface {
	Watch(ctx context.Context) error
}

type Generator struct {
	prompter session.Prompter
	out      io.Writer
	store    *store.FileStore
	catalog  catalog.Provider
	seedID   string
	watcher  watcher
	uploader storage.Provider
}

// Run drives one wizard session. The catalog watcher, when enabled, runs
// beside it and is stopped as soon as the session returns.
func (g *Generator) Run(ctx context.Context) error {
	opts := []session.Option{session.WithLogger(log.Logr().WithName("session"))}

	if g.seedID != "" {
		seed, err := g.catalog.Fetch(ctx, g.seedID)
		if err != nil {
			return fmt.Errorf("loading catalog seed: %w", err)
		}
		log.Info("Seeding first vehicle from catalog", "id", g.seedID, "make", seed.Make, "model", seed.Model)
		opts = append(opts, session.WithSeed(seed))
	}

	if g.uploader != nil {
		if err := g.uploader.CheckBucket(ctx); err != nil {
			log.Error(err, "Object storage unavailable, cards are only written locally")
		} else {
			opts = append(opts, session.WithUploader(g.uploader))
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	if g.watcher != nil {
		eg.Go(func() error {
			return g.watcher.Watch(watchCtx)
		})
	}

	eg.Go(func() error {
		defer stopWatch()
		return session.New(g.prompter, g.out, g.store, opts...).Run(ctx)
	})

	return eg.Wait()
}
