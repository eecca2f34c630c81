package wizard

import (
	"math"

	"matrimonial/models"
)

// hydrateDraft overlays a stored profile onto the defaults. Fields the record does
// not carry keep their default.
func hydrateDraft(p *models.Profile) ProfileDraft {
	d := NewDraft()
	if p == nil {
		return d
	}

	setString(&d.FullName, p.FullName)
	setString(&d.Gender, p.Gender)
	if p.DateOfBirth != nil && !p.DateOfBirth.IsZero() {
		d.DateOfBirth = p.DateOfBirth.Format(dateLayout)
	}
	setString(&d.MaritalStatus, p.MaritalStatus)
	setString(&d.Religion, p.Religion)
	setString(&d.Caste, p.Caste)
	setString(&d.SubCaste, p.SubCaste)
	setString(&d.MotherTongue, p.MotherTongue)
	setString(&d.Bio, p.Bio)

	d.Height = hydrateHeight(p.Height)
	if p.Weight != nil {
		d.Weight = *p.Weight
	}
	setString(&d.BodyType, p.BodyType)
	setString(&d.Complexion, p.Complexion)
	setString(&d.PhysicalStatus, p.PhysicalStatus)
	setString(&d.Diet, p.Diet)
	setString(&d.Smoking, p.Smoking)
	setString(&d.Drinking, p.Drinking)
	setSet(&d.Hobbies, p.Hobbies)
	setSet(&d.Interests, p.Interests)
	setSet(&d.Languages, p.Languages)

	setString(&d.Country, p.Country)
	setString(&d.State, p.State)
	setString(&d.City, p.City)
	setString(&d.Citizenship, p.Citizenship)
	setString(&d.ResidencyStatus, p.ResidencyStatus)
	setString(&d.Education, p.Education)
	setString(&d.EducationField, p.EducationField)
	setString(&d.Institution, p.Institution)
	setString(&d.Occupation, p.Occupation)
	setString(&d.EmploymentType, p.EmploymentType)
	setString(&d.Company, p.Company)
	setString(&d.JobTitle, p.JobTitle)
	setString(&d.MonthlyIncome, p.MonthlyIncome)
	setString(&d.AnnualIncome, p.AnnualIncome)

	d.PartnerPreferences = hydratePartnerPreferences(p.PartnerPreferences)
	d.PrivacySettings = hydratePrivacySettings(p.PrivacySettings)
	return d
}

// hydrateHeight copies a structured height, converts a legacy centimeter value,
// and falls back to 5'6" when nothing is stored.
func hydrateHeight(h *models.StoredHeight) Height {
	switch {
	case h.Structured():
		out := Height{Feet: *h.Feet}
		if h.Inches != nil {
			out.Inches = *h.Inches
		}
		return out
	case h != nil && h.Cm != nil:
		return heightFromCm(*h.Cm)
	default:
		return Height{Feet: defaultFeet, Inches: defaultInches}
	}
}

func heightFromCm(cm int) Height {
	totalInches := int(math.Round(float64(cm) / cmPerInch))
	return Height{Feet: totalInches / 12, Inches: totalInches % 12}
}

func hydratePartnerPreferences(p *models.StoredPartnerPreferences) PartnerPreferences {
	out := DefaultPartnerPreferences()
	if p == nil {
		return out
	}
	if p.AgeRange != nil {
		out.AgeRange = cloneRange(*p.AgeRange)
	}
	if p.HeightRange != nil {
		out.HeightRange = cloneRange(*p.HeightRange)
	}
	setSet(&out.Religion, p.Religion)
	setSet(&out.Caste, p.Caste)
	setSet(&out.Education, p.Education)
	setSet(&out.Occupation, p.Occupation)
	setSet(&out.MaritalStatus, p.MaritalStatus)
	setSet(&out.Diet, p.Diet)
	setSet(&out.City, p.City)
	setSet(&out.Country, p.Country)
	return out
}

func hydratePrivacySettings(p *models.StoredPrivacySettings) PrivacySettings {
	out := DefaultPrivacySettings()
	if p == nil {
		return out
	}
	if p.ShowPhone != nil {
		out.ShowPhone = *p.ShowPhone
	}
	if p.ShowEmail != nil {
		out.ShowEmail = *p.ShowEmail
	}
	if p.ShowIncome != nil {
		out.ShowIncome = *p.ShowIncome
	}
	if p.PhotoVisibility != nil && *p.PhotoVisibility != "" {
		out.PhotoVisibility = *p.PhotoVisibility
	}
	if p.ProfileVisibility != nil && *p.ProfileVisibility != "" {
		out.ProfileVisibility = *p.ProfileVisibility
	}
	return out
}

func setString[T ~string](dst *T, v T) {
	if v != "" {
		*dst = v
	}
}

func setSet(dst *StringSet, v []string) {
	if v != nil {
		*dst = StringSet(v).normalized()
	}
}
