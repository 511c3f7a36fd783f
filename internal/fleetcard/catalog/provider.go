// Package catalog looks up known vehicles so the wizard can pre-fill the
// identity prompts.
package catalog

import (
	"context"
	"errors"

	"cloupeer.io/fleetcard/internal/fleetcard/model"
)

// ErrNotFound is returned when the catalog has no vehicle with the given id.
var ErrNotFound = errors.New("vehicle not found in catalog")

// Provider fetches a vehicle's identity by catalog id.
type Provider interface {
	Fetch(ctx context.Context, id string) (model.Seed, error)
}
