package form

import (
	"context"
	"sync"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// SubmitFunc performs the external operation behind a valid form, for
// example registering the account.
type SubmitFunc func(ctx context.Context, values Values) error

type Result struct {
	Errors    Errors
	Submitted bool
}

// Gate decides whether a form may be handed to its SubmitFunc.
type Gate struct {
	validator *Validator
	submit    SubmitFunc

	mu    sync.Mutex
	phase Phase
}

func (g *Gate) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *Gate) setPhase(phase Phase) {
	g.mu.Lock()
	g.phase = phase
	g.mu.Unlock()
}

// Submit touches every field, validates the whole form and stores the
// fresh errors on state. The SubmitFunc runs only when every error is
// empty; its error is returned as is and the gate goes back to idle
// whatever the outcome.
func (g *Gate) Submit(ctx context.Context, state *State) (Result, error) {
	g.mu.Lock()
	if g.phase == PhaseSubmitting {
		g.mu.Unlock()
		return Result{}, ErrSubmitInProgress
	}

	state.TouchAll()
	errs := g.validator.ValidateAll(state.touched, state.values, state.kind)
	state.setErrors(errs)
	if !errs.Valid() {
		g.mu.Unlock()
		return Result{Errors: errs}, nil
	}

	g.phase = PhaseSubmitting
	values := state.Values()
	g.mu.Unlock()
	defer g.setPhase(PhaseIdle)

	return Result{Errors: errs, Submitted: true}, g.submit(ctx, values)
}

func NewGate(validator *Validator, submit SubmitFunc) *Gate {
	return &Gate{
		validator: validator,
		submit:    submit,
		phase:     PhaseIdle,
	}
}
