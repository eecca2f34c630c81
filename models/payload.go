package models

// ProfilePayload is the sparse create/update body sent to the profile store.
// Optional top-level fields are omitted when empty; height, partnerPreferences
// and privacySettings are always present.
type ProfilePayload struct {
	FullName      string `json:"fullName,omitempty" validate:"max=120"`
	Gender        string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	DateOfBirth   string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MaritalStatus string `json:"maritalStatus,omitempty" validate:"omitempty,oneof=never_married divorced widowed awaiting_divorce"`
	Religion      string `json:"religion,omitempty"`
	Caste         string `json:"caste,omitempty"`
	SubCaste      string `json:"subCaste,omitempty"`
	MotherTongue  string `json:"motherTongue,omitempty"`
	Bio           string `json:"bio,omitempty" validate:"max=1000"`

	Height         HeightPayload `json:"height"`
	Weight         *int          `json:"weight,omitempty" validate:"omitempty,min=20,max=300"`
	BodyType       string        `json:"bodyType,omitempty" validate:"omitempty,oneof=slim average athletic heavy"`
	Complexion     string        `json:"complexion,omitempty" validate:"omitempty,oneof=very_fair fair wheatish dark"`
	PhysicalStatus string        `json:"physicalStatus,omitempty" validate:"omitempty,oneof=normal physically_challenged"`
	Diet           string        `json:"diet,omitempty" validate:"omitempty,oneof=vegetarian non_vegetarian eggetarian vegan"`
	Smoking        string        `json:"smoking,omitempty" validate:"omitempty,oneof=no occasionally yes"`
	Drinking       string        `json:"drinking,omitempty" validate:"omitempty,oneof=no occasionally yes"`
	Hobbies        []string      `json:"hobbies,omitempty"`
	Interests      []string      `json:"interests,omitempty"`
	Languages      []string      `json:"languages,omitempty"`

	Country         string `json:"country,omitempty"`
	State           string `json:"state,omitempty"`
	City            string `json:"city,omitempty"`
	Citizenship     string `json:"citizenship,omitempty"`
	ResidencyStatus string `json:"residencyStatus,omitempty"`
	Education       string `json:"education,omitempty" validate:"omitempty,oneof=high_school diploma bachelors masters doctorate other"`
	EducationField  string `json:"educationField,omitempty"`
	Institution     string `json:"institution,omitempty"`
	Occupation      string `json:"occupation,omitempty"`
	EmploymentType  string `json:"employmentType,omitempty" validate:"omitempty,oneof=private government business self_employed not_working"`
	Company         string `json:"company,omitempty"`
	JobTitle        string `json:"jobTitle,omitempty"`
	MonthlyIncome   string `json:"monthlyIncome,omitempty" validate:"omitempty,oneof=below_50k 50k_100k 100k_200k 200k_500k above_500k"`
	AnnualIncome    string `json:"annualIncome,omitempty"`

	PartnerPreferences PartnerPreferencesPayload `json:"partnerPreferences"`
	PrivacySettings    PrivacyPayload            `json:"privacySettings"`
}

type HeightPayload struct {
	Feet   int `json:"feet" validate:"min=1,max=8"`
	Inches int `json:"inches" validate:"min=0,max=11"`
	Cm     int `json:"cm" validate:"min=0,max=272"`
}

// PartnerPreferencesPayload carries only the non-empty preference sets and the
// ranges with at least one bound.
type PartnerPreferencesPayload struct {
	AgeRange      *Range   `json:"ageRange,omitempty"`
	HeightRange   *Range   `json:"heightRange,omitempty"`
	Religion      []string `json:"religion,omitempty"`
	Caste         []string `json:"caste,omitempty"`
	Education     []string `json:"education,omitempty" validate:"omitempty,dive,oneof=high_school diploma bachelors masters doctorate other"`
	Occupation    []string `json:"occupation,omitempty"`
	MaritalStatus []string `json:"maritalStatus,omitempty" validate:"omitempty,dive,oneof=never_married divorced widowed awaiting_divorce"`
	Diet          []string `json:"diet,omitempty" validate:"omitempty,dive,oneof=vegetarian non_vegetarian eggetarian vegan"`
	City          []string `json:"city,omitempty"`
	Country       []string `json:"country,omitempty"`
}

type PrivacyPayload struct {
	ShowPhone         bool       `json:"showPhone"`
	ShowEmail         bool       `json:"showEmail"`
	ShowIncome        bool       `json:"showIncome"`
	PhotoVisibility   Visibility `json:"photoVisibility" validate:"oneof=all matches premium hidden"`
	ProfileVisibility Visibility `json:"profileVisibility" validate:"oneof=all matches premium hidden"`
}

// PhotoUpload is one not-yet-persisted photo handed to the store for upload.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
	IsPrimary   bool
}

// PhotoRef names a stored photo the user kept, in display order. PublicID is
// preferred; URL identifies photos stored without one.
type PhotoRef struct {
	PublicID  string
	URL       string
	IsPrimary bool
}
