package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cloupeer.io/fleetcard/internal/fleetcard/model"
	"cloupeer.io/fleetcard/internal/fleetcard/validate"
	"cloupeer.io/fleetcard/internal/pkg/metrics"
)

// question is one field prompt. An empty answer yields def when set;
// otherwise the answer goes through parse until it is accepted.
type question[T any] struct {
	field string
	text  string
	parse func(string) (T, error)
	def   *T
}

func ask[T any](ctx context.Context, s *Session, q question[T]) (T, error) {
	var zero T

	for {
		raw, err := s.prompter.Prompt(ctx, q.text)
		if err != nil {
			return zero, err
		}
		if raw == "" && q.def != nil {
			return *q.def, nil
		}

		v, err := q.parse(raw)
		if err == nil {
			return v, nil
		}
		if !validate.IsValidationError(err) {
			return zero, fmt.Errorf("%s: %w", q.field, err)
		}

		metrics.ValidationFailures.WithLabelValues(q.field).Inc()
		s.logger.V(1).Info("Rejected input", "field", q.field, "reason", err.Error())
		fmt.Fprintf(s.out, "Invalid input: %v. Please try again.\n", err)
	}
}

// identityDefaults are the seed values offered for the first vehicle. A seed
// value that would not pass its own validator is not offered.
type identityDefaults struct {
	year  *int
	make  *string
	model *string
	plate *string
}

func seedDefaults(seed *model.Seed) identityDefaults {
	var d identityDefaults
	if seed == nil {
		return d
	}

	if y, err := validate.Year(strconv.Itoa(seed.Year)); err == nil {
		d.year = &y
	}
	if m, err := validate.NonEmpty(seed.Make); err == nil {
		d.make = &m
	}
	if m, err := validate.NonEmpty(seed.Model); err == nil {
		d.model = &m
	}
	if p, err := validate.LicensePlate(seed.LicensePlate); err == nil {
		d.plate = &p
	}
	return d
}

// offer appends a visible default to a prompt: "Enter x (e.g., y): " becomes
// "Enter x (e.g., y) [z]: ".
func offer[T any](text string, def *T) string {
	if def == nil {
		return text
	}
	return fmt.Sprintf("%s [%v]: ", strings.TrimSuffix(text, ": "), *def)
}

func ptr[T any](v T) *T { return &v }

// collect prompts for every field of one vehicle. The seed only applies to
// the first vehicle of the session.
func (s *Session) collect(ctx context.Context) (model.Vehicle, error) {
	defs := seedDefaults(s.seed)
	s.seed = nil

	var (
		v   model.Vehicle
		err error
	)

	if v.Year, err = ask(ctx, s, question[int]{
		field: "year",
		text:  offer("Enter vehicle year (e.g., 2024): ", defs.year),
		parse: validate.Year,
		def:   defs.year,
	}); err != nil {
		return v, err
	}
	if v.Make, err = ask(ctx, s, question[string]{
		field: "make",
		text:  offer("Enter vehicle make (e.g., Subaru): ", defs.make),
		parse: validate.NonEmpty,
		def:   defs.make,
	}); err != nil {
		return v, err
	}
	if v.Model, err = ask(ctx, s, question[string]{
		field: "model",
		text:  offer("Enter vehicle model (e.g., Impreza): ", defs.model),
		parse: validate.NonEmpty,
		def:   defs.model,
	}); err != nil {
		return v, err
	}
	if v.VIN, err = ask(ctx, s, question[string]{
		field: "vin",
		text:  "Enter VIN: ",
		parse: validate.VIN,
	}); err != nil {
		return v, err
	}
	if v.LicensePlate, err = ask(ctx, s, question[string]{
		field: "license_plate",
		text:  offer("Enter license plate: ", defs.plate),
		parse: validate.LicensePlate,
		def:   defs.plate,
	}); err != nil {
		return v, err
	}
	if v.Color, err = ask(ctx, s, question[string]{
		field: "color",
		text:  "Enter car color (e.g., Blue): ",
		parse: validate.NonEmpty,
		def:   ptr(model.DefaultColor),
	}); err != nil {
		return v, err
	}
	if v.TireMin, err = ask(ctx, s, question[float64]{
		field: "tire_min",
		text:  "Enter minimum tire pressure (e.g., 30): ",
		parse: validate.Float,
		def:   ptr(model.DefaultTireMin),
	}); err != nil {
		return v, err
	}
	if v.TireMax, err = ask(ctx, s, question[float64]{
		field: "tire_max",
		text:  "Enter maximum tire pressure (e.g., 38): ",
		parse: validate.Float,
		def:   ptr(model.DefaultTireMax),
	}); err != nil {
		return v, err
	}

	if v.FuelEntity, err = s.askEntity(ctx, "fuel_entity",
		"Enter fuel level sensor entity (e.g., sensor.vehicle_fuel_level): "); err != nil {
		return v, err
	}

	v.TireEntities = make(map[model.TirePosition]string, len(model.TirePositions))
	for _, pos := range model.TirePositions {
		entity, err := s.askEntity(ctx, "tire_"+string(pos),
			fmt.Sprintf("Enter tire pressure sensor entity for %s: ", pos.Title()))
		if err != nil {
			return v, err
		}
		v.TireEntities[pos] = entity
	}

	if v.BatteryEntity, err = s.askEntity(ctx, "battery_entity",
		"Enter battery level sensor entity (e.g., sensor.vehicle_battery_level): "); err != nil {
		return v, err
	}
	if v.IgnitionEntity, err = s.askEntity(ctx, "ignition_entity",
		"Enter ignition sensor entity (e.g., binary_sensor.vehicle_ignition): "); err != nil {
		return v, err
	}
	if v.TroubleEntity, err = s.askEntity(ctx, "trouble_entity",
		"Enter trouble sensor entity (e.g., binary_sensor.vehicle_trouble): "); err != nil {
		return v, err
	}
	if v.OdometerEntity, err = s.askEntity(ctx, "odometer_entity",
		"Enter odometer sensor entity (e.g., sensor.vehicle_odometer): "); err != nil {
		return v, err
	}

	if v.PhotoURL, err = ask(ctx, s, question[string]{
		field: "photo_url",
		text:  "Enter photo URL for the vehicle image: ",
		parse: validate.URL,
		def:   ptr(model.DefaultPhotoURL),
	}); err != nil {
		return v, err
	}

	return v, nil
}

func (s *Session) askEntity(ctx context.Context, field, text string) (string, error) {
	return ask(ctx, s, question[string]{field: field, text: text, parse: validate.Entity})
}
