package wizard

import (
	"fmt"

	"github.com/ms1708/academy-portal/internal/domain"
)

// ValidationError is a local, field-level gate failure. It never reaches the
// network layer; the wizard surfaces it and stays on the current step.
type ValidationError struct {
	Step    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Message)
}

func invalid(step, field, message string) error {
	return &ValidationError{Step: step, Field: field, Message: message}
}

// Course-application step names, in flow order.
const (
	StepAdditionalInfo = "additional-info"
	StepEducationWork  = "education-work"
	StepProgramme      = "programme"
	StepPayment        = "payment"
	StepTerms          = "terms"
)

// ValidateAdditionalInfo gates the personal-details step.
func ValidateAdditionalInfo(d *domain.ApplicationDraft) error {
	if d.AdditionalInfo.MaritalStatus == "" {
		return invalid(StepAdditionalInfo, "maritalStatus", "marital status is required")
	}
	return nil
}

// ValidateEducationWork gates the education and employment step. Employer
// sub-fields apply only to employed socio-economic statuses.
func ValidateEducationWork(d *domain.ApplicationDraft) error {
	edu := d.Education
	switch {
	case edu.HighestQualification == "":
		return invalid(StepEducationWork, "highestQualification", "highest qualification is required")
	case edu.InstitutionName == "":
		return invalid(StepEducationWork, "institutionName", "institution name is required")
	case edu.YearCompleted == "":
		return invalid(StepEducationWork, "yearCompleted", "year completed is required")
	case edu.SocioEconomicStatus == "":
		return invalid(StepEducationWork, "socioEconomicStatus", "socio-economic status is required")
	}

	if edu.SocioEconomicStatus.Employed() {
		work := d.Work
		switch {
		case work.EmployerName == "":
			return invalid(StepEducationWork, "employerName", "employer name is required")
		case work.EmployerContact == "":
			return invalid(StepEducationWork, "employerContact", "employer contact is required")
		case work.JobTitle == "":
			return invalid(StepEducationWork, "jobTitle", "job title is required")
		}
	}
	return nil
}

// ValidateProgramme gates the course-selection step: a course must be chosen
// and at least one study resource available.
func ValidateProgramme(d *domain.ApplicationDraft) error {
	p := d.Programme
	if p.CourseName == "" {
		return invalid(StepProgramme, "courseName", "course selection is required")
	}
	if !p.HasComputer && !p.HasInternet && !p.HasLibraryAccess {
		return invalid(StepProgramme, "studyResources", "at least one study resource is required")
	}
	return nil
}

// ValidatePayment gates the funding step.
func ValidatePayment(d *domain.ApplicationDraft) error {
	if d.Payment.FundingSource == "" {
		return invalid(StepPayment, "fundingSource", "funding source is required")
	}
	return nil
}

// ValidateTerms gates the final acceptance step.
func ValidateTerms(d *domain.ApplicationDraft) error {
	if !d.TermsAccepted {
		return invalid(StepTerms, "termsAccepted", "terms and conditions must be accepted")
	}
	return nil
}
