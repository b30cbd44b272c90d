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

// FlowOnboarding names the three-step onboarding flow.
const FlowOnboarding = "onboarding"

const endpointCreateStudentDetails = "Student/CreateStudentDetails"

// Onboarding step names, in flow order.
const (
	StepStudentDetails    = "student-details"
	StepAdditionalDetails = "additional-details"
	StepNextOfKin         = "next-of-kin"
)

// Onboarding drives the three-step learner onboarding wizard. Submission
// posts the combined student record to the backend.
type Onboarding struct {
	mu         sync.RWMutex
	model      domain.OnboardingDraft
	drafts     *draft.Store
	gateway    *backend.Client
	dispatcher events.Dispatcher
	errs       *errorlog.Log
	ctrl       *Controller
	now        func() time.Time
}

// NewOnboarding restores a stored draft when one exists.
func NewOnboarding(drafts *draft.Store, gateway *backend.Client, dispatcher events.Dispatcher, errs *errorlog.Log) *Onboarding {
	o := &Onboarding{
		drafts:     drafts,
		gateway:    gateway,
		dispatcher: dispatcher,
		errs:       errs,
		now:        time.Now,
	}
	o.model.CurrentStep = 1

	o.ctrl = NewController([]Step{
		{Name: StepStudentDetails, Validate: o.validateStudent},
		{Name: StepAdditionalDetails, Validate: o.validateAdditional},
		{Name: StepNextOfKin, Validate: o.validateNextOfKin},
	}, o.persistStep, o.doSubmit)

	if drafts.Load(&o.model) {
		o.ctrl.Restore(o.model.CurrentStep)
		o.mu.Lock()
		o.model.CurrentStep = o.ctrl.Current()
		o.mu.Unlock()
	}
	return o
}

func (o *Onboarding) validateStudent() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	s := o.model.Student
	switch {
	case s.FirstName == "":
		return invalid(StepStudentDetails, "firstName", "first name is required")
	case s.LastName == "":
		return invalid(StepStudentDetails, "lastName", "last name is required")
	case s.IDNumber == "":
		return invalid(StepStudentDetails, "idNumber", "ID number is required")
	case s.DateOfBirth == "":
		return invalid(StepStudentDetails, "dateOfBirth", "date of birth is required")
	case s.ContactNumber == "":
		return invalid(StepStudentDetails, "contactNumber", "contact number is required")
	case s.Email == "":
		return invalid(StepStudentDetails, "email", "email is required")
	}
	return nil
}

func (o *Onboarding) validateAdditional() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	d := o.model.AdditionalDetails
	switch {
	case d.HomeLanguage == "":
		return invalid(StepAdditionalDetails, "homeLanguage", "home language is required")
	case d.Citizenship == "":
		return invalid(StepAdditionalDetails, "citizenship", "citizenship is required")
	case d.HomeAddress == "":
		return invalid(StepAdditionalDetails, "homeAddress", "home address is required")
	case d.City == "":
		return invalid(StepAdditionalDetails, "city", "city is required")
	case d.ProvinceState == "":
		return invalid(StepAdditionalDetails, "provinceState", "province or state is required")
	}
	return nil
}

func (o *Onboarding) validateNextOfKin() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	k := o.model.NextOfKin
	switch {
	case k.FullName == "":
		return invalid(StepNextOfKin, "fullName", "next of kin name is required")
	case k.Relationship == "":
		return invalid(StepNextOfKin, "relationship", "relationship is required")
	case k.ContactNumber == "":
		return invalid(StepNextOfKin, "contactNumber", "next of kin contact number is required")
	}
	return nil
}

// Advance gates on the current step's validator; see Controller.Advance.
func (o *Onboarding) Advance(ctx context.Context) error {
	return o.ctrl.Advance(ctx)
}

// Retreat moves one step back without validation or persistence.
func (o *Onboarding) Retreat() {
	o.ctrl.Retreat()
	o.mu.Lock()
	o.model.CurrentStep = o.ctrl.Current()
	o.mu.Unlock()
}

// Submit sends the combined student record.
func (o *Onboarding) Submit(ctx context.Context) error {
	return o.ctrl.Submit(ctx)
}

// SetStudent updates the first step and auto-saves.
func (o *Onboarding) SetStudent(s domain.StudentDetails) {
	o.mutate(func() { o.model.Student = s })
}

// SetAdditionalDetails updates the second step and auto-saves.
func (o *Onboarding) SetAdditionalDetails(d domain.StudentAdditionalDetails) {
	o.mutate(func() { o.model.AdditionalDetails = d })
}

// SetNextOfKin updates the final step and auto-saves.
func (o *Onboarding) SetNextOfKin(k domain.StudentNextOfKin) {
	o.mutate(func() { o.model.NextOfKin = k })
}

// Snapshot returns a copy of the draft model and the flow position.
func (o *Onboarding) Snapshot() (domain.OnboardingDraft, int, bool) {
	o.mu.RLock()
	model := o.model
	o.mu.RUnlock()
	return model, o.ctrl.Current(), o.ctrl.Submitted()
}

// StepName returns the active step's name, or "submitted".
func (o *Onboarding) StepName() string {
	return o.ctrl.CurrentName()
}

// TotalSteps returns the flow length.
func (o *Onboarding) TotalSteps() int {
	return o.ctrl.Total()
}

func (o *Onboarding) mutate(fn func()) {
	o.mu.Lock()
	fn()
	o.model.Timestamp = o.now()
	snapshot := o.model
	o.mu.Unlock()

	o.drafts.Save(snapshot)
	o.publishDraftSaved(snapshot.CurrentStep)
}

func (o *Onboarding) persistStep(step int) {
	o.mu.Lock()
	o.model.CurrentStep = step
	o.model.Timestamp = o.now()
	snapshot := o.model
	o.mu.Unlock()

	o.drafts.Save(snapshot)
	o.publishDraftSaved(step)
}

func (o *Onboarding) doSubmit(ctx context.Context) error {
	o.mu.RLock()
	payload := domain.OnboardingSubmission{
		Student:           o.model.Student,
		AdditionalDetails: o.model.AdditionalDetails,
		NextOfKin:         o.model.NextOfKin,
	}
	o.mu.RUnlock()

	if err := o.gateway.Post(ctx, endpointCreateStudentDetails, payload, nil); err != nil {
		o.errs.RecordError("Onboarding submission failed", err, nil)
		return err
	}

	o.errs.Record(errorlog.LevelInfo, "Onboarding completed for "+payload.Student.Email, nil)
	_ = o.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApplicationSubmitted,
		Timestamp: o.now(),
		Payload:   events.ApplicationSubmittedPayload{Flow: FlowOnboarding},
	})
	return nil
}

func (o *Onboarding) publishDraftSaved(step int) {
	_ = o.dispatcher.Publish(context.Background(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDraftSaved,
		Timestamp: o.now(),
		Payload:   events.DraftSavedPayload{Flow: FlowOnboarding, CurrentStep: step},
	})
}
