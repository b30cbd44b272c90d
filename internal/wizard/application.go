package wizard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ms1708/academy-portal/internal/backend"
	"github.com/ms1708/academy-portal/internal/domain"
	"github.com/ms1708/academy-portal/internal/draft"
	"github.com/ms1708/academy-portal/internal/errorlog"
	"github.com/ms1708/academy-portal/internal/events"
)

// FlowCourseApplication names the five-step course-application flow.
const FlowCourseApplication = "course-application"

const endpointSubmitApplication = "Student/SubmitCourseApplication"

// Application drives the course-application wizard: five gated steps over a
// single draft model, auto-saved on every mutation and persisted with the new
// step index on every valid advance. The draft deliberately survives
// submission; see Clear.
type Application struct {
	mu         sync.RWMutex
	model      domain.ApplicationDraft
	drafts     *draft.Store
	gateway    *backend.Client
	dispatcher events.Dispatcher
	errs       *errorlog.Log
	ctrl       *Controller
	now        func() time.Time
}

// NewApplication restores a stored draft when one exists, otherwise starts at
// step 1 with an empty model.
func NewApplication(drafts *draft.Store, gateway *backend.Client, dispatcher events.Dispatcher, errs *errorlog.Log) *Application {
	a := &Application{
		drafts:     drafts,
		gateway:    gateway,
		dispatcher: dispatcher,
		errs:       errs,
		now:        time.Now,
	}
	a.model.CurrentStep = 1

	a.ctrl = NewController([]Step{
		{Name: StepAdditionalInfo, Validate: a.validate(ValidateAdditionalInfo)},
		{Name: StepEducationWork, Validate: a.validate(ValidateEducationWork)},
		{Name: StepProgramme, Validate: a.validate(ValidateProgramme)},
		{Name: StepPayment, Validate: a.validate(ValidatePayment)},
		{Name: StepTerms, Validate: a.validate(ValidateTerms)},
	}, a.persistStep, a.doSubmit)

	if drafts.Load(&a.model) {
		a.ctrl.Restore(a.model.CurrentStep)
		a.mu.Lock()
		a.model.CurrentStep = a.ctrl.Current()
		a.mu.Unlock()
	}
	return a
}

func (a *Application) validate(fn func(*domain.ApplicationDraft) error) func() error {
	return func() error {
		a.mu.RLock()
		defer a.mu.RUnlock()
		return fn(&a.model)
	}
}

// Advance gates on the current step's validator; see Controller.Advance.
func (a *Application) Advance(ctx context.Context) error {
	return a.ctrl.Advance(ctx)
}

// Retreat moves one step back without validation or persistence.
func (a *Application) Retreat() {
	a.ctrl.Retreat()
	a.mu.Lock()
	a.model.CurrentStep = a.ctrl.Current()
	a.mu.Unlock()
}

// Submit sends the accumulated application; duplicate calls while one is in
// flight are rejected.
func (a *Application) Submit(ctx context.Context) error {
	return a.ctrl.Submit(ctx)
}

// SetUserInfo replaces the read-only identity block sourced from the account.
func (a *Application) SetUserInfo(info domain.UserInformation) {
	a.mutate(func() { a.model.UserInfo = info })
}

// SetAdditionalInfo updates the personal-details step.
func (a *Application) SetAdditionalInfo(info domain.AdditionalInformation) {
	a.mutate(func() { a.model.AdditionalInfo = info })
}

// SetEducation updates the education part of the education/work step.
func (a *Application) SetEducation(edu domain.EducationalBackground) {
	a.mutate(func() { a.model.Education = edu })
}

// SetWork updates the employment part of the education/work step.
func (a *Application) SetWork(work domain.WorkBackground) {
	a.mutate(func() { a.model.Work = work })
}

// SetProgramme updates the course-selection step.
func (a *Application) SetProgramme(p domain.ProgrammeDetails) {
	a.mutate(func() { a.model.Programme = p })
}

// SetPayment updates the funding step.
func (a *Application) SetPayment(p domain.PaymentDetails) {
	a.mutate(func() { a.model.Payment = p })
}

// SetTermsAccepted updates the final acceptance flag.
func (a *Application) SetTermsAccepted(accepted bool) {
	a.mutate(func() { a.model.TermsAccepted = accepted })
}

// Snapshot returns a copy of the draft model and the flow position.
func (a *Application) Snapshot() (domain.ApplicationDraft, int, bool) {
	a.mu.RLock()
	model := a.model
	a.mu.RUnlock()
	return model, a.ctrl.Current(), a.ctrl.Submitted()
}

// StepName returns the active step's name, or "submitted".
func (a *Application) StepName() string {
	return a.ctrl.CurrentName()
}

// TotalSteps returns the flow length.
func (a *Application) TotalSteps() int {
	return a.ctrl.Total()
}

// Clear drops the stored draft. Never called implicitly: the portal keeps the
// draft after submission so an interrupted session can be inspected.
func (a *Application) Clear() {
	a.drafts.Clear()
}

// mutate applies a field update and auto-saves the draft.
func (a *Application) mutate(fn func()) {
	a.mu.Lock()
	fn()
	a.model.Timestamp = a.now()
	snapshot := a.model
	a.mu.Unlock()

	a.drafts.Save(snapshot)
	a.publishDraftSaved(snapshot.CurrentStep)
}

// persistStep writes the snapshot carrying the post-transition step.
func (a *Application) persistStep(step int) {
	a.mu.Lock()
	a.model.CurrentStep = step
	a.model.Timestamp = a.now()
	snapshot := a.model
	a.mu.Unlock()

	a.drafts.Save(snapshot)
	a.publishDraftSaved(step)
}

func (a *Application) doSubmit(ctx context.Context) error {
	a.mu.RLock()
	payload := a.model
	a.mu.RUnlock()

	if err := a.gateway.Post(ctx, endpointSubmitApplication, payload, nil); err != nil {
		a.errs.RecordError("Course application submission failed", err, map[string]interface{}{
			"course": payload.Programme.CourseName,
		})
		return err
	}

	a.errs.Record(errorlog.LevelInfo, "Course application submitted", map[string]interface{}{
		"course": payload.Programme.CourseName,
	})
	_ = a.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApplicationSubmitted,
		Timestamp: a.now(),
		Payload: events.ApplicationSubmittedPayload{
			Flow:       FlowCourseApplication,
			CourseName: payload.Programme.CourseName,
		},
	})
	return nil
}

func (a *Application) publishDraftSaved(step int) {
	_ = a.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDraftSaved,
		Timestamp: a.now(),
		Payload:   events.DraftSavedPayload{Flow: FlowCourseApplication, CurrentStep: step},
	})
}
