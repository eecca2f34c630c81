package models

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Profile is the persisted matrimonial profile document. Older documents may lack
// any of the optional fields, so every nested record is a pointer and hydration
// falls back to defaults for whatever is missing.
type Profile struct {
	ID     string `bson:"id" json:"id"`
	UserID string `bson:"userId" json:"userId"`

	FullName      string        `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Gender        Gender        `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth   *time.Time    `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	MaritalStatus MaritalStatus `bson:"maritalStatus,omitempty" json:"maritalStatus,omitempty"`
	Religion      string        `bson:"religion,omitempty" json:"religion,omitempty"`
	Caste         string        `bson:"caste,omitempty" json:"caste,omitempty"`
	SubCaste      string        `bson:"subCaste,omitempty" json:"subCaste,omitempty"`
	MotherTongue  string        `bson:"motherTongue,omitempty" json:"motherTongue,omitempty"`
	Bio           string        `bson:"bio,omitempty" json:"bio,omitempty"`

	Height         *StoredHeight  `bson:"height,omitempty" json:"height,omitempty"`
	Weight         *int           `bson:"weight,omitempty" json:"weight,omitempty"`
	BodyType       BodyType       `bson:"bodyType,omitempty" json:"bodyType,omitempty"`
	Complexion     Complexion     `bson:"complexion,omitempty" json:"complexion,omitempty"`
	PhysicalStatus PhysicalStatus `bson:"physicalStatus,omitempty" json:"physicalStatus,omitempty"`
	Diet           Diet           `bson:"diet,omitempty" json:"diet,omitempty"`
	Smoking        Habit          `bson:"smoking,omitempty" json:"smoking,omitempty"`
	Drinking       Habit          `bson:"drinking,omitempty" json:"drinking,omitempty"`
	Hobbies        []string       `bson:"hobbies,omitempty" json:"hobbies,omitempty"`
	Interests      []string       `bson:"interests,omitempty" json:"interests,omitempty"`
	Languages      []string       `bson:"languages,omitempty" json:"languages,omitempty"`

	Country         string         `bson:"country,omitempty" json:"country,omitempty"`
	State           string         `bson:"state,omitempty" json:"state,omitempty"`
	City            string         `bson:"city,omitempty" json:"city,omitempty"`
	Citizenship     string         `bson:"citizenship,omitempty" json:"citizenship,omitempty"`
	ResidencyStatus string         `bson:"residencyStatus,omitempty" json:"residencyStatus,omitempty"`
	Education       EducationLevel `bson:"education,omitempty" json:"education,omitempty"`
	EducationField  string         `bson:"educationField,omitempty" json:"educationField,omitempty"`
	Institution     string         `bson:"institution,omitempty" json:"institution,omitempty"`
	Occupation      string         `bson:"occupation,omitempty" json:"occupation,omitempty"`
	EmploymentType  EmploymentType `bson:"employmentType,omitempty" json:"employmentType,omitempty"`
	Company         string         `bson:"company,omitempty" json:"company,omitempty"`
	JobTitle        string         `bson:"jobTitle,omitempty" json:"jobTitle,omitempty"`
	MonthlyIncome   IncomeBucket   `bson:"monthlyIncome,omitempty" json:"monthlyIncome,omitempty"`
	// AnnualIncome is only read back from records written before monthly buckets existed.
	AnnualIncome string `bson:"annualIncome,omitempty" json:"annualIncome,omitempty"`

	PartnerPreferences *StoredPartnerPreferences `bson:"partnerPreferences,omitempty" json:"partnerPreferences,omitempty"`
	PrivacySettings    *StoredPrivacySettings    `bson:"privacySettings,omitempty" json:"privacySettings,omitempty"`
	Photos             []StoredPhoto             `bson:"photos,omitempty" json:"photos,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StoredHeight accepts either the structured {feet, inches, cm} document or the
// legacy bare number of centimeters.
type StoredHeight struct {
	Feet   *int `bson:"feet,omitempty" json:"feet,omitempty"`
	Inches *int `bson:"inches,omitempty" json:"inches,omitempty"`
	Cm     *int `bson:"cm,omitempty" json:"cm,omitempty"`
}

// Structured reports whether the record carries a feet/inches pair.
func (h *StoredHeight) Structured() bool {
	return h != nil && h.Feet != nil
}

type heightDoc StoredHeight

func (h *StoredHeight) UnmarshalJSON(data []byte) error {
	var cm float64
	if err := json.Unmarshal(data, &cm); err == nil {
		v := int(math.Round(cm))
		*h = StoredHeight{Cm: &v}
		return nil
	}
	var doc heightDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("height: %w", err)
	}
	*h = StoredHeight(doc)
	return nil
}

func (h *StoredHeight) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	var cm float64
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*h = StoredHeight{}
		return nil
	case bsontype.Double:
		cm = raw.Double()
	case bsontype.Int32:
		cm = float64(raw.Int32())
	case bsontype.Int64:
		cm = float64(raw.Int64())
	case bsontype.EmbeddedDocument:
		var doc heightDoc
		if err := raw.Unmarshal(&doc); err != nil {
			return fmt.Errorf("height: %w", err)
		}
		*h = StoredHeight(doc)
		return nil
	default:
		return fmt.Errorf("height: unsupported bson type %s", t)
	}
	v := int(math.Round(cm))
	*h = StoredHeight{Cm: &v}
	return nil
}

// Range is an inclusive numeric range; either bound may be unset.
type Range struct {
	Min *int `bson:"min,omitempty" json:"min,omitempty"`
	Max *int `bson:"max,omitempty" json:"max,omitempty"`
}

// Defined reports whether at least one bound is set.
func (r *Range) Defined() bool {
	return r != nil && (r.Min != nil || r.Max != nil)
}

// NewRange builds a range with both bounds set.
func NewRange(min, max int) Range {
	return Range{Min: &min, Max: &max}
}

type StoredPartnerPreferences struct {
	AgeRange      *Range   `bson:"ageRange,omitempty" json:"ageRange,omitempty"`
	HeightRange   *Range   `bson:"heightRange,omitempty" json:"heightRange,omitempty"`
	Religion      []string `bson:"religion,omitempty" json:"religion,omitempty"`
	Caste         []string `bson:"caste,omitempty" json:"caste,omitempty"`
	Education     []string `bson:"education,omitempty" json:"education,omitempty"`
	Occupation    []string `bson:"occupation,omitempty" json:"occupation,omitempty"`
	MaritalStatus []string `bson:"maritalStatus,omitempty" json:"maritalStatus,omitempty"`
	Diet          []string `bson:"diet,omitempty" json:"diet,omitempty"`
	City          []string `bson:"city,omitempty" json:"city,omitempty"`
	Country       []string `bson:"country,omitempty" json:"country,omitempty"`
}

type StoredPrivacySettings struct {
	ShowPhone         *bool       `bson:"showPhone,omitempty" json:"showPhone,omitempty"`
	ShowEmail         *bool       `bson:"showEmail,omitempty" json:"showEmail,omitempty"`
	ShowIncome        *bool       `bson:"showIncome,omitempty" json:"showIncome,omitempty"`
	PhotoVisibility   *Visibility `bson:"photoVisibility,omitempty" json:"photoVisibility,omitempty"`
	ProfileVisibility *Visibility `bson:"profileVisibility,omitempty" json:"profileVisibility,omitempty"`
}

type StoredPhoto struct {
	URL        string    `bson:"url" json:"url"`
	PublicID   string    `bson:"publicId,omitempty" json:"publicId,omitempty"`
	IsPrimary  bool      `bson:"isPrimary" json:"isPrimary"`
	IsVerified bool      `bson:"isVerified" json:"isVerified"`
	UploadedAt time.Time `bson:"uploadedAt,omitempty" json:"uploadedAt,omitempty"`
}
