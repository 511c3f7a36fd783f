package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
	"gopkg.in/yaml.v3"

	"cloupeer.io/fleetcard/internal/fleetcard/model"
)

var _ Provider = (*File)(nil)

// fileFormat is the on-disk layout of a catalog file:
//
//	vehicles:
//	  vehicle_1:
//	    make: Toyota
//	    model: Camry
//	    year: 2020
//	    license_plate: ABC-1234
type fileFormat struct {
	Vehicles map[string]model.Seed `yaml:"vehicles"`
}

// File is a catalog loaded from a YAML inventory file.
type File struct {
	path   string
	logger logr.Logger

	mu       sync.RWMutex
	vehicles Static
}

// Open loads the catalog at path.
func Open(path string, logger logr.Logger) (*File, error) {
	f := &File{path: path, logger: logger.WithValues("catalog", path)}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload re-reads the file. On failure the previously loaded vehicles are kept.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse catalog %s: %w", f.path, err)
	}
	if doc.Vehicles == nil {
		doc.Vehicles = map[string]model.Seed{}
	}

	f.mu.Lock()
	f.vehicles = doc.Vehicles
	f.mu.Unlock()

	f.logger.V(1).Info("Catalog loaded", "vehicles", len(doc.Vehicles))
	return nil
}

// Len returns the number of vehicles currently loaded.
func (f *File) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.vehicles)
}

func (f *File) Fetch(ctx context.Context, id string) (model.Seed, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.vehicles.Fetch(ctx, id)
}

// Watch reloads the catalog whenever the file is written, created or
// renamed into place, until ctx is done. The parent directory is watched so
// editors that replace the file atomically are followed.
func (f *File) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}

	target := filepath.Clean(f.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := f.Reload(); err != nil {
				f.logger.Error(err, "Catalog reload failed, keeping previous vehicles")
				continue
			}
			f.logger.Info("Catalog reloaded", "vehicles", f.Len())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			f.logger.Error(err, "Catalog watcher error")
		}
	}
}
