package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ms1708/academy-portal/internal/domain"
)

func completeDraft() domain.ApplicationDraft {
	return domain.ApplicationDraft{
		AdditionalInfo: domain.AdditionalInformation{
			MaritalStatus: domain.MaritalStatusSingle,
		},
		Education: domain.EducationalBackground{
			HighestQualification: "matric",
			InstitutionName:      "Parktown High",
			YearCompleted:        "2019",
			SocioEconomicStatus:  domain.SocioEconomicUnemployed,
		},
		Programme: domain.ProgrammeDetails{
			CourseName:  "software-development",
			HasInternet: true,
		},
		Payment:       domain.PaymentDetails{FundingSource: "self"},
		TermsAccepted: true,
	}
}

func assertInvalidField(t *testing.T, err error, step, field string) {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, step, verr.Step)
	assert.Equal(t, field, verr.Field)
}

func TestValidateAdditionalInfo(t *testing.T) {
	d := completeDraft()
	assert.NoError(t, ValidateAdditionalInfo(&d))

	d.AdditionalInfo.MaritalStatus = ""
	assertInvalidField(t, ValidateAdditionalInfo(&d), StepAdditionalInfo, "maritalStatus")
}

func TestValidateEducationWork(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*domain.ApplicationDraft)
		wantField string
	}{
		{name: "complete unemployed", mutate: func(*domain.ApplicationDraft) {}},
		{
			name: "missing qualification",
			mutate: func(d *domain.ApplicationDraft) {
				d.Education.HighestQualification = ""
			},
			wantField: "highestQualification",
		},
		{
			name: "missing institution",
			mutate: func(d *domain.ApplicationDraft) {
				d.Education.InstitutionName = ""
			},
			wantField: "institutionName",
		},
		{
			name: "missing year",
			mutate: func(d *domain.ApplicationDraft) {
				d.Education.YearCompleted = ""
			},
			wantField: "yearCompleted",
		},
		{
			name: "missing socio-economic status",
			mutate: func(d *domain.ApplicationDraft) {
				d.Education.SocioEconomicStatus = ""
			},
			wantField: "socioEconomicStatus",
		},
		{
			name: "employed without employer",
			mutate: func(d *domain.ApplicationDraft) {
				d.Education.SocioEconomicStatus = domain.SocioEconomicEmployed
			},
			wantField: "employerName",
		},
		{
			name: "self-employed without job title",
			mutate: func(d *domain.ApplicationDraft) {
				d.Education.SocioEconomicStatus = domain.SocioEconomicSelfEmployed
				d.Work.EmployerName = "Own business"
				d.Work.EmployerContact = "0110000000"
			},
			wantField: "jobTitle",
		},
		{
			name: "employed with full employer details",
			mutate: func(d *domain.ApplicationDraft) {
				d.Education.SocioEconomicStatus = domain.SocioEconomicEmployed
				d.Work = domain.WorkBackground{
					EmployerName:    "Acme",
					EmployerContact: "0110000000",
					JobTitle:        "Clerk",
				}
			},
		},
		{
			name: "student ignores employer fields",
			mutate: func(d *domain.ApplicationDraft) {
				d.Education.SocioEconomicStatus = domain.SocioEconomicStudent
				d.Work = domain.WorkBackground{}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := completeDraft()
			tt.mutate(&d)
			err := ValidateEducationWork(&d)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assertInvalidField(t, err, StepEducationWork, tt.wantField)
		})
	}
}

func TestValidateProgramme(t *testing.T) {
	d := completeDraft()
	assert.NoError(t, ValidateProgramme(&d))

	d.Programme.CourseName = ""
	assertInvalidField(t, ValidateProgramme(&d), StepProgramme, "courseName")

	d = completeDraft()
	d.Programme.HasComputer = false
	d.Programme.HasInternet = false
	d.Programme.HasLibraryAccess = false
	assertInvalidField(t, ValidateProgramme(&d), StepProgramme, "studyResources")

	d.Programme.HasLibraryAccess = true
	assert.NoError(t, ValidateProgramme(&d))
}

func TestValidatePayment(t *testing.T) {
	d := completeDraft()
	assert.NoError(t, ValidatePayment(&d))

	d.Payment.FundingSource = ""
	assertInvalidField(t, ValidatePayment(&d), StepPayment, "fundingSource")
}

func TestValidateTerms(t *testing.T) {
	d := completeDraft()
	assert.NoError(t, ValidateTerms(&d))

	d.TermsAccepted = false
	assertInvalidField(t, ValidateTerms(&d), StepTerms, "termsAccepted")
}
