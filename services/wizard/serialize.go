package wizard

import (
	"math"
	"strings"

	"matrimonial/models"
)

const (
	dateLayout = "2006-01-02"
	cmPerInch  = 2.54
)

// serializeDraft builds the sparse wire payload. Optional top-level fields are
// dropped when blank; height, partnerPreferences and privacySettings are always sent.
func serializeDraft(d *ProfileDraft) models.ProfilePayload {
	p := models.ProfilePayload{
		FullName:      trimmed(d.FullName),
		Gender:        trimmed(d.Gender),
		DateOfBirth:   trimmed(d.DateOfBirth),
		MaritalStatus: trimmed(d.MaritalStatus),
		Religion:      trimmed(d.Religion),
		Caste:         trimmed(d.Caste),
		SubCaste:      trimmed(d.SubCaste),
		MotherTongue:  trimmed(d.MotherTongue),
		Bio:           trimmed(d.Bio),

		Height:         serializeHeight(d.Height),
		BodyType:       trimmed(d.BodyType),
		Complexion:     trimmed(d.Complexion),
		PhysicalStatus: trimmed(d.PhysicalStatus),
		Diet:           trimmed(d.Diet),
		Smoking:        trimmed(d.Smoking),
		Drinking:       trimmed(d.Drinking),
		Hobbies:        nonEmpty(d.Hobbies),
		Interests:      nonEmpty(d.Interests),
		Languages:      nonEmpty(d.Languages),

		Country:         trimmed(d.Country),
		State:           trimmed(d.State),
		City:            trimmed(d.City),
		Citizenship:     trimmed(d.Citizenship),
		ResidencyStatus: trimmed(d.ResidencyStatus),
		Education:       trimmed(d.Education),
		EducationField:  trimmed(d.EducationField),
		Institution:     trimmed(d.Institution),
		Occupation:      trimmed(d.Occupation),
		EmploymentType:  trimmed(d.EmploymentType),
		Company:         trimmed(d.Company),
		JobTitle:        trimmed(d.JobTitle),
		MonthlyIncome:   trimmed(d.MonthlyIncome),
		AnnualIncome:    trimmed(d.AnnualIncome),

		PartnerPreferences: serializePartnerPreferences(&d.PartnerPreferences),
		PrivacySettings:    serializePrivacy(d.PrivacySettings),
	}
	if d.Weight > 0 {
		w := d.Weight
		p.Weight = &w
	}
	return p
}

// serializeHeight falls back to 5'6" for values that cannot be a height.
func serializeHeight(h Height) models.HeightPayload {
	feet, inches := h.Feet, h.Inches
	if feet <= 0 {
		feet = defaultFeet
	}
	if inches < 0 || inches > 11 {
		inches = defaultInches
	}
	return models.HeightPayload{
		Feet:   feet,
		Inches: inches,
		Cm:     int(math.Round(float64(feet*12+inches) * cmPerInch)),
	}
}

func serializePartnerPreferences(pp *PartnerPreferences) models.PartnerPreferencesPayload {
	out := models.PartnerPreferencesPayload{
		Religion:      nonEmpty(pp.Religion),
		Caste:         nonEmpty(pp.Caste),
		Education:     nonEmpty(pp.Education),
		Occupation:    nonEmpty(pp.Occupation),
		MaritalStatus: nonEmpty(pp.MaritalStatus),
		Diet:          nonEmpty(pp.Diet),
		City:          nonEmpty(pp.City),
		Country:       nonEmpty(pp.Country),
	}
	if pp.AgeRange.Defined() {
		r := cloneRange(pp.AgeRange)
		out.AgeRange = &r
	}
	if pp.HeightRange.Defined() {
		r := cloneRange(pp.HeightRange)
		out.HeightRange = &r
	}
	return out
}

func serializePrivacy(p PrivacySettings) models.PrivacyPayload {
	out := models.PrivacyPayload{
		ShowPhone:         p.ShowPhone,
		ShowEmail:         p.ShowEmail,
		ShowIncome:        p.ShowIncome,
		PhotoVisibility:   p.PhotoVisibility,
		ProfileVisibility: p.ProfileVisibility,
	}
	if strings.TrimSpace(string(out.PhotoVisibility)) == "" {
		out.PhotoVisibility = models.VisibilityAll
	}
	if strings.TrimSpace(string(out.ProfileVisibility)) == "" {
		out.ProfileVisibility = models.VisibilityAll
	}
	return out
}

func trimmed[T ~string](v T) string {
	return strings.TrimSpace(string(v))
}

// nonEmpty returns nil for an empty set so the field is omitted.
func nonEmpty(s StringSet) []string {
	n := s.normalized()
	if len(n) == 0 {
		return nil
	}
	return []string(n)
}
