package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flowRecorder struct {
	mu        sync.Mutex
	persisted []int
	submits   int
	submitErr error
	started   chan struct{}
	release   chan struct{}
}

func (r *flowRecorder) persist(step int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persisted = append(r.persisted, step)
}

func (r *flowRecorder) submit(_ context.Context) error {
	if r.started != nil {
		close(r.started)
	}
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	r.submits++
	r.mu.Unlock()
	return r.submitErr
}

func threeSteps(gate *error) []Step {
	validate := func() error {
		if gate == nil {
			return nil
		}
		return *gate
	}
	return []Step{
		{Name: "one", Validate: validate},
		{Name: "two", Validate: validate},
		{Name: "three", Validate: validate},
	}
}

func TestAdvanceMovesAndPersistsNewStep(t *testing.T) {
	rec := &flowRecorder{}
	ctrl := NewController(threeSteps(nil), rec.persist, rec.submit)

	require.NoError(t, ctrl.Advance(context.Background()))
	assert.Equal(t, 2, ctrl.Current())
	assert.Equal(t, "two", ctrl.CurrentName())
	assert.Equal(t, []int{2}, rec.persisted, "snapshot carries the post-transition step")
}

func TestAdvanceInvalidStaysPut(t *testing.T) {
	gate := errors.New("field missing")
	rec := &flowRecorder{}
	ctrl := NewController(threeSteps(&gate), rec.persist, rec.submit)

	err := ctrl.Advance(context.Background())
	assert.ErrorIs(t, err, gate)
	assert.Equal(t, 1, ctrl.Current())
	assert.Empty(t, rec.persisted, "invalid advance must not write a draft")
}

func TestAdvanceOnFinalStepSubmits(t *testing.T) {
	rec := &flowRecorder{}
	ctrl := NewController(threeSteps(nil), rec.persist, rec.submit)
	ctrl.Restore(3)

	require.NoError(t, ctrl.Advance(context.Background()))
	assert.True(t, ctrl.Submitted())
	assert.Equal(t, "submitted", ctrl.CurrentName())
	assert.Equal(t, 1, rec.submits)
	assert.Empty(t, rec.persisted)
}

func TestSubmitFailureStaysOnLastStep(t *testing.T) {
	rec := &flowRecorder{submitErr: errors.New("backend down")}
	ctrl := NewController(threeSteps(nil), rec.persist, rec.submit)
	ctrl.Restore(3)

	err := ctrl.Advance(context.Background())
	assert.ErrorIs(t, err, rec.submitErr)
	assert.False(t, ctrl.Submitted())
	assert.Equal(t, 3, ctrl.Current())

	// failure is not terminal: a retry can still succeed
	rec.submitErr = nil
	require.NoError(t, ctrl.Advance(context.Background()))
	assert.True(t, ctrl.Submitted())
}

func TestSubmitRejectsConcurrentDuplicate(t *testing.T) {
	rec := &flowRecorder{started: make(chan struct{}), release: make(chan struct{})}
	ctrl := NewController(threeSteps(nil), rec.persist, rec.submit)
	ctrl.Restore(3)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- ctrl.Submit(context.Background())
	}()
	<-rec.started

	assert.ErrorIs(t, ctrl.Submit(context.Background()), ErrSubmitInFlight)

	close(rec.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, rec.submits)
}

func TestOperationsAfterSubmission(t *testing.T) {
	rec := &flowRecorder{}
	ctrl := NewController(threeSteps(nil), rec.persist, rec.submit)
	ctrl.Restore(3)
	require.NoError(t, ctrl.Submit(context.Background()))

	assert.ErrorIs(t, ctrl.Advance(context.Background()), ErrSubmitted)
	assert.ErrorIs(t, ctrl.Submit(context.Background()), ErrSubmitted)

	ctrl.Retreat()
	assert.Equal(t, 3, ctrl.Current(), "terminal state ignores retreat")
	assert.Equal(t, 1, rec.submits)
}

func TestRetreat(t *testing.T) {
	rec := &flowRecorder{}
	ctrl := NewController(threeSteps(nil), rec.persist, rec.submit)

	ctrl.Retreat()
	assert.Equal(t, 1, ctrl.Current(), "cannot retreat past the first step")

	ctrl.Restore(3)
	ctrl.Retreat()
	assert.Equal(t, 2, ctrl.Current())
	assert.Empty(t, rec.persisted, "retreat never persists")
}

func TestRestoreClampsRange(t *testing.T) {
	ctrl := NewController(threeSteps(nil), nil, nil)

	ctrl.Restore(0)
	assert.Equal(t, 1, ctrl.Current())

	ctrl.Restore(99)
	assert.Equal(t, 3, ctrl.Current())

	ctrl.Restore(2)
	assert.Equal(t, 2, ctrl.Current())
}

func TestNewControllerRejectsEmptyFlow(t *testing.T) {
	assert.Panics(t, func() {
		NewController(nil, nil, nil)
	})
}
