// Package fsm runs table-driven state machines.
//
// A machine is a list of transitions. Entering a state runs the action of
// the transition that leads to it, and the action names the next state.
// Moving along an edge that is not in the table stops the machine.
package fsm

import (
	"context"
	"errors"
	"fmt"

	"github.com/samcharles93/elfinspect/internal/logger"
)

type State string

const (
	Init State = "INIT"
	Exit State = "EXIT"
)

var ErrBadTransition = errors.New("fsm: bad state transition")

// Action runs on entry to a state and returns the state to move to next.
type Action[C any] func(ctx context.Context, c C) State

type Transition[C any] struct {
	From   State
	To     State
	Action Action[C]
}

type edge struct{ from, to State }

type Machine[C any] struct {
	name    string
	actions map[edge]Action[C]
	log     logger.Logger
}

// New builds a machine from its transition table. The edge into Exit needs
// no action.
func New[C any](name string, log logger.Logger, transitions []Transition[C]) *Machine[C] {
	m := &Machine[C]{
		name:    name,
		actions: make(map[edge]Action[C], len(transitions)),
		log:     log.With("fsm", name),
	}
	for _, t := range transitions {
		m.actions[edge{t.From, t.To}] = t.Action
	}
	return m
}

// Run starts the machine at Init moving to first and runs until it reaches
// Exit. It returns the last state entered before Exit.
func (m *Machine[C]) Run(ctx context.Context, c C, first State) (State, error) {
	from, to := Init, first
	for {
		action, ok := m.actions[edge{from, to}]
		if !ok {
			m.log.Error("bad state change", "from", from, "to", to)
			return from, fmt.Errorf("%w: %s -> %s", ErrBadTransition, from, to)
		}
		if to == Exit {
			return from, nil
		}
		if action == nil {
			return from, fmt.Errorf("%w: no action for %s -> %s", ErrBadTransition, from, to)
		}

		m.log.Debug("state change", "from", from, "to", to)
		from, to = to, action(ctx, c)
	}
}
