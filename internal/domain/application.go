package domain

import "time"

// MaritalStatus values accepted on the additional-info step.
type MaritalStatus string

const (
	MaritalStatusSingle   MaritalStatus = "single"
	MaritalStatusMarried  MaritalStatus = "married"
	MaritalStatusDivorced MaritalStatus = "divorced"
	MaritalStatusWidowed  MaritalStatus = "widowed"
)

// SocioEconomicStatus values accepted on the education/work step. Employed
// variants require the employer sub-fields to be filled in.
type SocioEconomicStatus string

const (
	SocioEconomicEmployed     SocioEconomicStatus = "employed"
	SocioEconomicSelfEmployed SocioEconomicStatus = "self-employed"
	SocioEconomicUnemployed   SocioEconomicStatus = "unemployed"
	SocioEconomicStudent      SocioEconomicStatus = "student"
)

// Employed reports whether the status requires employer details.
func (s SocioEconomicStatus) Employed() bool {
	return s == SocioEconomicEmployed || s == SocioEconomicSelfEmployed
}

// UserInformation is the read-only identity block shown on the first page of
// the course application. It is sourced from the account record.
type UserInformation struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	DateOfBirth   string `json:"dateOfBirth"`
	IDNumber      string `json:"idNumber"`
	Gender        string `json:"gender"`
	Nationality   string `json:"nationality"`
	HomeAddress   string `json:"homeAddress"`
}

// AdditionalInformation collects the personal details step.
type AdditionalInformation struct {
	MiddleName    string        `json:"middleName"`
	MaritalStatus MaritalStatus `json:"maritalStatus"`
	HomeTelephone string        `json:"homeTelephone"`
}

// EducationalBackground collects schooling history.
type EducationalBackground struct {
	HighestQualification string              `json:"highestQualification"`
	InstitutionName      string              `json:"institutionName"`
	YearCompleted        string              `json:"yearCompleted"`
	SocioEconomicStatus  SocioEconomicStatus `json:"socioEconomicStatus"`
}

// WorkBackground collects employer details, required only when the
// socio-economic status is an employed variant.
type WorkBackground struct {
	EmployerName    string `json:"employerName"`
	EmployerContact string `json:"employerContact"`
	JobTitle        string `json:"jobTitle"`
}

// ProgrammeDetails collects the chosen course and study resources.
type ProgrammeDetails struct {
	CourseName       string `json:"courseName"`
	HasComputer      bool   `json:"hasComputer"`
	HasInternet      bool   `json:"hasInternet"`
	HasLibraryAccess bool   `json:"hasLibraryAccess"`
}

// PaymentDetails collects how the programme will be funded.
type PaymentDetails struct {
	FundingSource string `json:"fundingSource"`
}

// ApplicationDraft is the locally persisted snapshot of an in-progress course
// application. CurrentStep stays within [1, N] for the owning flow.
type ApplicationDraft struct {
	UserInfo       UserInformation       `json:"userInfo"`
	AdditionalInfo AdditionalInformation `json:"additionalInfo"`
	Education      EducationalBackground `json:"educationalBackground"`
	Work           WorkBackground        `json:"workBackground"`
	Programme      ProgrammeDetails      `json:"programmeDetails"`
	Payment        PaymentDetails        `json:"paymentDetails"`
	TermsAccepted  bool                  `json:"termsAccepted"`
	CurrentStep    int                   `json:"currentStep"`
	Timestamp      time.Time             `json:"timestamp"`
}
