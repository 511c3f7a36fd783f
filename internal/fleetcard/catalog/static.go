package catalog

import (
	"context"
	"fmt"

	"cloupeer.io/fleetcard/internal/fleetcard/model"
)

var _ Provider = Static(nil)

// Static is an in-memory catalog keyed by vehicle id.
type Static map[string]model.Seed

// Builtin returns the catalog shipped with the binary.
func Builtin() Static {
	return Static{
		"vehicle_1": {
			Make:         "Toyota",
			Model:        "Camry",
			Year:         2020,
			LicensePlate: "ABC-1234",
			TirePressure: 32,
			FuelLevel:    75,
		},
	}
}

func (s Static) Fetch(ctx context.Context, id string) (model.Seed, error) {
	if err := ctx.Err(); err != nil {
		return model.Seed{}, err
	}

	seed, ok := s[id]
	if !ok {
		return model.Seed{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return seed, nil
}
