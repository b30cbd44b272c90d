package domain

import "time"

// StudentDetails is the first onboarding step: core learner identity.
type StudentDetails struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	IDNumber      string `json:"idNumber"`
	DateOfBirth   string `json:"dateOfBirth"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
}

// StudentAdditionalDetails is the second onboarding step: language,
// citizenship and address details.
type StudentAdditionalDetails struct {
	HomeLanguage  string `json:"homeLanguage"`
	Citizenship   string `json:"citizenship"`
	HomeAddress   string `json:"homeAddress"`
	AddressLine2  string `json:"addressLine2"`
	City          string `json:"city"`
	ProvinceState string `json:"provinceState"`
	Municipality  string `json:"municipality"`
}

// StudentNextOfKin is the final onboarding step.
type StudentNextOfKin struct {
	FullName      string `json:"fullName"`
	Relationship  string `json:"relationship"`
	ContactNumber string `json:"contactNumber"`
}

// OnboardingSubmission is the combined payload posted to the backend once
// every onboarding step has been completed.
type OnboardingSubmission struct {
	Student           StudentDetails           `json:"student"`
	AdditionalDetails StudentAdditionalDetails `json:"studentAdditionalDetails"`
	NextOfKin         StudentNextOfKin         `json:"studentNextOfKin"`
}

// OnboardingDraft is the locally persisted snapshot of an in-progress
// onboarding flow.
type OnboardingDraft struct {
	Student           StudentDetails           `json:"student"`
	AdditionalDetails StudentAdditionalDetails `json:"studentAdditionalDetails"`
	NextOfKin         StudentNextOfKin         `json:"studentNextOfKin"`
	CurrentStep       int                      `json:"currentStep"`
	Timestamp         time.Time                `json:"timestamp"`
}
