package session

import (
	"context"

	"github.com/looplab/fsm"
)

// Session states.
const (
	// StateCollecting prompts for every field of the next vehicle.
	StateCollecting = "collecting"
	// StateReviewing has a card on disk and asks whether to show it and
	// whether to continue.
	StateReviewing = "reviewing"
	// StateDone is terminal.
	StateDone = "done"
)

// Session events.
const (
	// EventSubmit carries a fully validated model.Vehicle.
	EventSubmit = "submit"
	EventNext   = "next"
	EventFinish = "finish"
)

func (s *Session) newStateMachine() *fsm.FSM {
	events := fsm.Events{
		{Name: EventSubmit, Src: []string{StateCollecting}, Dst: StateReviewing},
		{Name: EventNext, Src: []string{StateReviewing}, Dst: StateCollecting},
		{Name: EventFinish, Src: []string{StateReviewing}, Dst: StateDone},
	}

	callbacks := fsm.Callbacks{
		"enter_" + StateReviewing: wrapEvent(s.persist),
		"enter_" + StateDone:      wrapEvent(s.finish),
	}

	return fsm.NewFSM(StateCollecting, events, callbacks)
}

// wrapEvent adapts an error-returning callback; the error is reported by
// FSM.Event through Event.Err.
func wrapEvent(fn func(ctx context.Context, e *fsm.Event) error) fsm.Callback {
	return func(ctx context.Context, e *fsm.Event) {
		if err := fn(ctx, e); err != nil {
			e.Err = err
		}
	}
}
