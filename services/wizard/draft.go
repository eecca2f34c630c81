package wizard

import (
	"strings"

	"matrimonial/models"
)

const (
	DefaultCountry     = "Sri Lanka"
	defaultFeet        = 5
	defaultInches      = 6
	defaultAgeMin      = 21
	defaultAgeMax      = 35
	defaultHeightMinCm = 150
	defaultHeightMaxCm = 180
)

// StringSet is an ordered set: insertion order is kept for display, duplicates are not.
type StringSet []string

func (s StringSet) Contains(item string) bool {
	for _, v := range s {
		if v == item {
			return true
		}
	}
	return false
}

// Toggle removes item if present, appends it otherwise.
func (s StringSet) Toggle(item string) StringSet {
	for i, v := range s {
		if v == item {
			out := make(StringSet, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	out := make(StringSet, 0, len(s)+1)
	out = append(out, s...)
	return append(out, item)
}

// normalized drops blanks and duplicates, keeping first occurrence order.
func (s StringSet) normalized() StringSet {
	out := make(StringSet, 0, len(s))
	for _, v := range s {
		v = strings.TrimSpace(v)
		if v == "" || out.Contains(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (s StringSet) clone() StringSet {
	if s == nil {
		return StringSet{}
	}
	out := make(StringSet, len(s))
	copy(out, s)
	return out
}

type Height struct {
	Feet   int `json:"feet"`
	Inches int `json:"inches"`
}

type PartnerPreferences struct {
	AgeRange      models.Range `json:"ageRange"`
	HeightRange   models.Range `json:"heightRange"`
	Religion      StringSet    `json:"religion"`
	Caste         StringSet    `json:"caste"`
	Education     StringSet    `json:"education"`
	Occupation    StringSet    `json:"occupation"`
	MaritalStatus StringSet    `json:"maritalStatus"`
	Diet          StringSet    `json:"diet"`
	City          StringSet    `json:"city"`
	Country       StringSet    `json:"country"`
}

type PrivacySettings struct {
	ShowPhone         bool              `json:"showPhone"`
	ShowEmail         bool              `json:"showEmail"`
	ShowIncome        bool              `json:"showIncome"`
	PhotoVisibility   models.Visibility `json:"photoVisibility"`
	ProfileVisibility models.Visibility `json:"profileVisibility"`
}

// ProfileDraft is the in-progress form state. JSON names double as the field
// names accepted by UpdateField.
type ProfileDraft struct {
	FullName      string               `json:"fullName"`
	Gender        models.Gender        `json:"gender"`
	DateOfBirth   string               `json:"dateOfBirth"`
	MaritalStatus models.MaritalStatus `json:"maritalStatus"`
	Religion      string               `json:"religion"`
	Caste         string               `json:"caste"`
	SubCaste      string               `json:"subCaste"`
	MotherTongue  string               `json:"motherTongue"`
	Bio           string               `json:"bio"`

	Height         Height                `json:"height"`
	Weight         int                   `json:"weight"`
	BodyType       models.BodyType       `json:"bodyType"`
	Complexion     models.Complexion     `json:"complexion"`
	PhysicalStatus models.PhysicalStatus `json:"physicalStatus"`
	Diet           models.Diet           `json:"diet"`
	Smoking        models.Habit          `json:"smoking"`
	Drinking       models.Habit          `json:"drinking"`
	Hobbies        StringSet             `json:"hobbies"`
	Interests      StringSet             `json:"interests"`
	Languages      StringSet             `json:"languages"`

	Country         string                `json:"country"`
	State           string                `json:"state"`
	City            string                `json:"city"`
	Citizenship     string                `json:"citizenship"`
	ResidencyStatus string                `json:"residencyStatus"`
	Education       models.EducationLevel `json:"education"`
	EducationField  string                `json:"educationField"`
	Institution     string                `json:"institution"`
	Occupation      string                `json:"occupation"`
	EmploymentType  models.EmploymentType `json:"employmentType"`
	Company         string                `json:"company"`
	JobTitle        string                `json:"jobTitle"`
	MonthlyIncome   models.IncomeBucket   `json:"monthlyIncome"`
	AnnualIncome    string                `json:"annualIncome"`

	PartnerPreferences PartnerPreferences `json:"partnerPreferences"`
	PrivacySettings    PrivacySettings    `json:"privacySettings"`
}

// DefaultPartnerPreferences declares every preference default in one place.
func DefaultPartnerPreferences() PartnerPreferences {
	return PartnerPreferences{
		AgeRange:      models.NewRange(defaultAgeMin, defaultAgeMax),
		HeightRange:   models.NewRange(defaultHeightMinCm, defaultHeightMaxCm),
		Religion:      StringSet{},
		Caste:         StringSet{},
		Education:     StringSet{},
		Occupation:    StringSet{},
		MaritalStatus: StringSet{},
		Diet:          StringSet{},
		City:          StringSet{},
		Country:       StringSet{},
	}
}

func DefaultPrivacySettings() PrivacySettings {
	return PrivacySettings{
		PhotoVisibility:   models.VisibilityAll,
		ProfileVisibility: models.VisibilityAll,
	}
}

// NewDraft returns the draft a create-mode wizard starts from.
func NewDraft() ProfileDraft {
	return ProfileDraft{
		Height:             Height{Feet: defaultFeet, Inches: defaultInches},
		Hobbies:            StringSet{},
		Interests:          StringSet{},
		Languages:          StringSet{},
		Country:            DefaultCountry,
		PartnerPreferences: DefaultPartnerPreferences(),
		PrivacySettings:    DefaultPrivacySettings(),
	}
}

// clone deep-copies every slice and range pointer.
func (d ProfileDraft) clone() ProfileDraft {
	out := d
	out.Hobbies = d.Hobbies.clone()
	out.Interests = d.Interests.clone()
	out.Languages = d.Languages.clone()

	pp := d.PartnerPreferences
	out.PartnerPreferences = PartnerPreferences{
		AgeRange:      cloneRange(pp.AgeRange),
		HeightRange:   cloneRange(pp.HeightRange),
		Religion:      pp.Religion.clone(),
		Caste:         pp.Caste.clone(),
		Education:     pp.Education.clone(),
		Occupation:    pp.Occupation.clone(),
		MaritalStatus: pp.MaritalStatus.clone(),
		Diet:          pp.Diet.clone(),
		City:          pp.City.clone(),
		Country:       pp.Country.clone(),
	}
	return out
}

func (d *ProfileDraft) normalizeSets() {
	d.Hobbies = d.Hobbies.normalized()
	d.Interests = d.Interests.normalized()
	d.Languages = d.Languages.normalized()
	pp := &d.PartnerPreferences
	for _, s := range pp.sets() {
		*s = s.normalized()
	}
}

func (p *PartnerPreferences) sets() map[string]*StringSet {
	return map[string]*StringSet{
		"religion":      &p.Religion,
		"caste":         &p.Caste,
		"education":     &p.Education,
		"occupation":    &p.Occupation,
		"maritalStatus": &p.MaritalStatus,
		"diet":          &p.Diet,
		"city":          &p.City,
		"country":       &p.Country,
	}
}

// setField resolves a set-valued field by wire name, including
// "partnerPreferences.<set>" paths.
func (d *ProfileDraft) setField(name string) (*StringSet, bool) {
	switch name {
	case "hobbies":
		return &d.Hobbies, true
	case "interests":
		return &d.Interests, true
	case "languages":
		return &d.Languages, true
	}
	if rest, ok := strings.CutPrefix(name, "partnerPreferences."); ok {
		s, ok := d.PartnerPreferences.sets()[rest]
		return s, ok
	}
	return nil, false
}

func cloneRange(r models.Range) models.Range {
	var out models.Range
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
