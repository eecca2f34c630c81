package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"matrimonial/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// InvalidPayloadError lists the payload fields that failed validation. The
// message is meant for the user.
type InvalidPayloadError struct {
	Fields []string
}

func (e *InvalidPayloadError) Error() string {
	return "Some profile details are invalid: " + strings.Join(e.Fields, ", ")
}

func (s *Service) validatePayload(p models.ProfilePayload) error {
	err := s.validate.Struct(p)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("failed to validate profile: %w", err)
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		fields = append(fields, ns)
	}
	return &InvalidPayloadError{Fields: fields}
}

// toDocument builds the stored document for userID. Identity, photos and creation
// time carry over from existing.
func toDocument(userID string, existing *models.Profile, p models.ProfilePayload) (*models.Profile, error) {
	doc := &models.Profile{
		ID:            uuid.NewString(),
		UserID:        userID,
		FullName:      p.FullName,
		Gender:        models.Gender(p.Gender),
		MaritalStatus: models.MaritalStatus(p.MaritalStatus),
		Religion:      p.Religion,
		Caste:         p.Caste,
		SubCaste:      p.SubCaste,
		MotherTongue:  p.MotherTongue,
		Bio:           p.Bio,

		Height:         toStoredHeight(p.Height),
		BodyType:       models.BodyType(p.BodyType),
		Complexion:     models.Complexion(p.Complexion),
		PhysicalStatus: models.PhysicalStatus(p.PhysicalStatus),
		Diet:           models.Diet(p.Diet),
		Smoking:        models.Habit(p.Smoking),
		Drinking:       models.Habit(p.Drinking),
		Hobbies:        p.Hobbies,
		Interests:      p.Interests,
		Languages:      p.Languages,

		Country:         p.Country,
		State:           p.State,
		City:            p.City,
		Citizenship:     p.Citizenship,
		ResidencyStatus: p.ResidencyStatus,
		Education:       models.EducationLevel(p.Education),
		EducationField:  p.EducationField,
		Institution:     p.Institution,
		Occupation:      p.Occupation,
		EmploymentType:  models.EmploymentType(p.EmploymentType),
		Company:         p.Company,
		JobTitle:        p.JobTitle,
		MonthlyIncome:   models.IncomeBucket(p.MonthlyIncome),
		AnnualIncome:    p.AnnualIncome,

		PartnerPreferences: toStoredPreferences(p.PartnerPreferences),
		PrivacySettings:    toStoredPrivacy(p.PrivacySettings),
	}
	if p.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, p.DateOfBirth)
		if err != nil {
			return nil, &InvalidPayloadError{Fields: []string{"dateOfBirth"}}
		}
		doc.DateOfBirth = &dob
	}
	if p.Weight != nil {
		w := *p.Weight
		doc.Weight = &w
	}
	if existing != nil {
		doc.ID = existing.ID
		doc.Photos = existing.Photos
		doc.CreatedAt = existing.CreatedAt
	}
	return doc, nil
}

func toStoredHeight(h models.HeightPayload) *models.StoredHeight {
	feet, inches, cm := h.Feet, h.Inches, h.Cm
	return &models.StoredHeight{Feet: &feet, Inches: &inches, Cm: &cm}
}

func toStoredPreferences(p models.PartnerPreferencesPayload) *models.StoredPartnerPreferences {
	return &models.StoredPartnerPreferences{
		AgeRange:      copyRange(p.AgeRange),
		HeightRange:   copyRange(p.HeightRange),
		Religion:      p.Religion,
		Caste:         p.Caste,
		Education:     p.Education,
		Occupation:    p.Occupation,
		MaritalStatus: p.MaritalStatus,
		Diet:          p.Diet,
		City:          p.City,
		Country:       p.Country,
	}
}

func toStoredPrivacy(p models.PrivacyPayload) *models.StoredPrivacySettings {
	phone, email, income := p.ShowPhone, p.ShowEmail, p.ShowIncome
	photo, profile := p.PhotoVisibility, p.ProfileVisibility
	return &models.StoredPrivacySettings{
		ShowPhone:         &phone,
		ShowEmail:         &email,
		ShowIncome:        &income,
		PhotoVisibility:   &photo,
		ProfileVisibility: &profile,
	}
}

func copyRange(r *models.Range) *models.Range {
	if !r.Defined() {
		return nil
	}
	out := &models.Range{}
	if r.Min != nil {
		v := *r.Min
		out.Min = &v
	}
	if r.Max != nil {
		v := *r.Max
		out.Max = &v
	}
	return out
}
