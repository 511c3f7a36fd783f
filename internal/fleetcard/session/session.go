// Package session drives the interactive card wizard.
//
// A Session loops over vehicles: it collects and validates every field,
// writes the card, optionally shows it back, and asks whether to continue.
package session

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/gosuri/uitable"
	"github.com/looplab/fsm"

	"cloupeer.io/fleetcard/internal/fleetcard/card"
	"cloupeer.io/fleetcard/internal/fleetcard/model"
	"cloupeer.io/fleetcard/internal/fleetcard/storage"
	"cloupeer.io/fleetcard/internal/fleetcard/store"
	"cloupeer.io/fleetcard/internal/pkg/metrics"
)

// Session is one wizard run. It is not safe for concurrent use.
type Session struct {
	prompter Prompter
	out      io.Writer
	store    store.Store
	uploader storage.Provider
	seed     *model.Seed
	logger   logr.Logger

	machine *fsm.FSM
	written []Written
}

// Written describes a card persisted during the session.
type Written struct {
	Vehicle  model.Vehicle
	Name     string
	Path     string
	Location string // object storage location, empty when not uploaded
}

type Option func(*Session)

// WithUploader also uploads every written card.
func WithUploader(p storage.Provider) Option {
	return func(s *Session) { s.uploader = p }
}

// WithSeed pre-fills the first vehicle's identity prompts.
func WithSeed(seed model.Seed) Option {
	return func(s *Session) { s.seed = &seed }
}

func WithLogger(l logr.Logger) Option {
	return func(s *Session) { s.logger = l }
}

func New(prompter Prompter, out io.Writer, st store.Store, opts ...Option) *Session {
	s := &Session{
		prompter: prompter,
		out:      out,
		store:    st,
		logger:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.machine = s.newStateMachine()
	return s
}

// State returns the current state name.
func (s *Session) State() string { return s.machine.Current() }

// Written returns the cards persisted so far, in order.
func (s *Session) Written() []Written { return s.written }

// Run drives the session until the operator stops or a fatal error occurs.
// Rejected answers are re-prompted; any other error ends the session.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Welcome to the Fleet Card Generator Wizard!")

	for !s.machine.Is(StateDone) {
		var err error
		switch s.machine.Current() {
		case StateCollecting:
			err = s.collectStep(ctx)
		case StateReviewing:
			err = s.reviewStep(ctx)
		default:
			err = fmt.Errorf("unexpected session state %q", s.machine.Current())
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Session) collectStep(ctx context.Context) error {
	fmt.Fprintln(s.out, "\nEntering details for a new vehicle:")

	v, err := s.collect(ctx)
	if err != nil {
		return err
	}
	return s.machine.Event(ctx, EventSubmit, v)
}

func (s *Session) reviewStep(ctx context.Context) error {
	last := s.written[len(s.written)-1]

	show, err := s.confirm(ctx, "Do you want to review the generated YAML? (y/n): ")
	if err != nil {
		return err
	}
	if show {
		data, err := s.store.Read(ctx, last.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "\n--- %s ---\n%s\n--- End of %s ---\n\n", last.Path, data, last.Path)
	}

	again, err := s.confirm(ctx, "Do you want to add another vehicle? (y/n): ")
	if err != nil {
		return err
	}
	if again {
		return s.machine.Event(ctx, EventNext)
	}
	return s.machine.Event(ctx, EventFinish)
}

// persist runs on entering StateReviewing. A failed write is fatal; a
// failed upload is reported and the session goes on.
func (s *Session) persist(ctx context.Context, e *fsm.Event) error {
	if len(e.Args) == 0 {
		return fmt.Errorf("%s event without a vehicle", e.Event)
	}
	v, ok := e.Args[0].(model.Vehicle)
	if !ok {
		return fmt.Errorf("%s event carries %T, want model.Vehicle", e.Event, e.Args[0])
	}

	data, err := card.Marshal(card.Build(v))
	if err != nil {
		return err
	}

	w := Written{Vehicle: v, Name: card.Filename(v)}
	if w.Path, err = s.store.Write(ctx, w.Name, data); err != nil {
		return err
	}
	metrics.CardsWritten.Inc()
	s.logger.Info("Card written", "path", w.Path, "vin", v.VIN)

	fmt.Fprintf(s.out, "\nYAML configuration for %d %s %s (%s) has been saved to '%s'.\n",
		v.Year, v.Make, v.Model, v.LicensePlate, w.Path)

	if s.uploader != nil {
		w.Location = s.upload(ctx, w.Name, data)
	}

	s.written = append(s.written, w)
	return nil
}

func (s *Session) upload(ctx context.Context, name string, data []byte) string {
	location, err := s.uploader.Upload(ctx, name, data)
	if err != nil {
		metrics.Uploads.WithLabelValues("failed").Inc()
		s.logger.Error(err, "Card upload failed", "file", name)
		fmt.Fprintf(s.out, "Warning: could not upload '%s': %v\n", name, err)
		return ""
	}

	metrics.Uploads.WithLabelValues("success").Inc()
	fmt.Fprintf(s.out, "Uploaded '%s' to %s.\n", name, location)
	return location
}

// finish runs on entering StateDone.
func (s *Session) finish(_ context.Context, _ *fsm.Event) error {
	fmt.Fprintln(s.out, "Wizard completed. All vehicle configurations have been generated.")

	if len(s.written) == 0 {
		return nil
	}

	table := uitable.New()
	table.MaxColWidth = 64
	table.AddRow("YEAR", "MAKE", "MODEL", "PLATE", "FILE")
	for _, w := range s.written {
		table.AddRow(w.Vehicle.Year, w.Vehicle.Make, w.Vehicle.Model, w.Vehicle.LicensePlate, w.Path)
	}
	fmt.Fprintf(s.out, "\n%s\n", table)
	return nil
}

// confirm asks a yes/no question; only "y" (any case, surrounding space
// ignored) counts as yes.
func (s *Session) confirm(ctx context.Context, question string) (bool, error) {
	answer, err := s.prompter.Prompt(ctx, question)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}
