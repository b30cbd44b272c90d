package wizard

import (
	"context"
	"errors"
	"sync"
)

// ErrSubmitted is returned when operating on a flow that already reached its
// terminal state.
var ErrSubmitted = errors.New("wizard: application already submitted")

// ErrSubmitInFlight rejects a duplicate submission while one is pending.
// Repeated clicks must not produce concurrent submits.
var ErrSubmitInFlight = errors.New("wizard: submission already in flight")

// Step is one gated position in a flow. A nil Validate means the step is
// always passable.
type Step struct {
	Name     string
	Validate func() error
}

// Controller sequences an ordered flow of steps 1..N plus a terminal
// submitted state. Validation gates forward movement only; going back is
// always allowed and never persisted.
type Controller struct {
	mu        sync.Mutex
	steps     []Step
	current   int
	submitted bool
	inFlight  bool
	persist   func(step int)
	submit    func(ctx context.Context) error
}

// NewController builds a flow starting at step 1. persist is invoked with the
// new step index after every valid forward transition; submit runs when
// advancing past the final step.
func NewController(steps []Step, persist func(step int), submit func(ctx context.Context) error) *Controller {
	if len(steps) == 0 {
		panic("wizard: flow needs at least one step")
	}
	return &Controller{steps: steps, current: 1, persist: persist, submit: submit}
}

// Advance validates the current step. Invalid input keeps the cursor where it
// is and performs no draft write. Valid input persists a snapshot carrying
// the new step, then moves; on the final step it submits instead.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	if c.submitted {
		c.mu.Unlock()
		return ErrSubmitted
	}

	step := c.steps[c.current-1]
	if step.Validate != nil {
		if err := step.Validate(); err != nil {
			c.mu.Unlock()
			return err
		}
	}

	if c.current == len(c.steps) {
		c.mu.Unlock()
		return c.Submit(ctx)
	}

	c.current++
	next := c.current
	persist := c.persist
	c.mu.Unlock()

	if persist != nil {
		persist(next)
	}
	return nil
}

// Retreat moves one step back when possible. No validation, no persistence.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.submitted && c.current > 1 {
		c.current--
	}
}

// Submit runs the final submission. Failure leaves the flow on its last input
// step; there is no retry at this layer.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitted {
		c.mu.Unlock()
		return ErrSubmitted
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.inFlight = true
	submit := c.submit
	c.mu.Unlock()

	var err error
	if submit != nil {
		err = submit(ctx)
	}

	c.mu.Lock()
	c.inFlight = false
	if err == nil {
		c.submitted = true
	}
	c.mu.Unlock()
	return err
}

// Restore jumps the cursor to a stored step, clamped into [1, N]. Used when
// hydrating from a draft.
func (c *Controller) Restore(step int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if step < 1 {
		step = 1
	}
	if step > len(c.steps) {
		step = len(c.steps)
	}
	c.current = step
}

// Current returns the 1-based cursor position.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// CurrentName returns the active step's name, or "submitted" once terminal.
func (c *Controller) CurrentName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitted {
		return "submitted"
	}
	return c.steps[c.current-1].Name
}

// Total returns the number of steps in the flow.
func (c *Controller) Total() int {
	return len(c.steps)
}

// Submitted reports whether the flow reached its terminal state.
func (c *Controller) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}
