package dto

import "github.com/ms1708/academy-portal/internal/domain"

// ApplicationStateResponse reports the wizard position and draft model.
type ApplicationStateResponse struct {
	Flow        string                  `json:"flow"`
	CurrentStep int                     `json:"currentStep"`
	StepName    string                  `json:"stepName"`
	TotalSteps  int                     `json:"totalSteps"`
	Submitted   bool                    `json:"submitted"`
	Draft       domain.ApplicationDraft `json:"draft"`
}

// ApplicationUpdateRequest applies partial field updates to the draft. Only
// the sections present in the payload are replaced.
type ApplicationUpdateRequest struct {
	UserInfo       *domain.UserInformation       `json:"userInfo,omitempty"`
	AdditionalInfo *domain.AdditionalInformation `json:"additionalInfo,omitempty"`
	Education      *domain.EducationalBackground `json:"educationalBackground,omitempty"`
	Work           *domain.WorkBackground        `json:"workBackground,omitempty"`
	Programme      *domain.ProgrammeDetails      `json:"programmeDetails,omitempty"`
	Payment        *domain.PaymentDetails        `json:"paymentDetails,omitempty"`
	TermsAccepted  *bool                         `json:"termsAccepted,omitempty"`
}

// OnboardingStateResponse reports the onboarding wizard position and draft.
type OnboardingStateResponse struct {
	Flow        string                 `json:"flow"`
	CurrentStep int                    `json:"currentStep"`
	StepName    string                 `json:"stepName"`
	TotalSteps  int                    `json:"totalSteps"`
	Submitted   bool                   `json:"submitted"`
	Draft       domain.OnboardingDraft `json:"draft"`
}

// OnboardingUpdateRequest applies partial field updates to the onboarding
// draft.
type OnboardingUpdateRequest struct {
	Student           *domain.StudentDetails           `json:"student,omitempty"`
	AdditionalDetails *domain.StudentAdditionalDetails `json:"studentAdditionalDetails,omitempty"`
	NextOfKin         *domain.StudentNextOfKin         `json:"studentNextOfKin,omitempty"`
}
