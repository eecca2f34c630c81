package models

// Enumerated profile attributes. Values are stored and sent on the wire as-is.

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type MaritalStatus string

const (
	MaritalNeverMarried    MaritalStatus = "never_married"
	MaritalDivorced        MaritalStatus = "divorced"
	MaritalWidowed         MaritalStatus = "widowed"
	MaritalAwaitingDivorce MaritalStatus = "awaiting_divorce"
)

type BodyType string

const (
	BodySlim     BodyType = "slim"
	BodyAverage  BodyType = "average"
	BodyAthletic BodyType = "athletic"
	BodyHeavy    BodyType = "heavy"
)

type Complexion string

const (
	ComplexionVeryFair Complexion = "very_fair"
	ComplexionFair     Complexion = "fair"
	ComplexionWheatish Complexion = "wheatish"
	ComplexionDark     Complexion = "dark"
)

type PhysicalStatus string

const (
	PhysicalNormal     PhysicalStatus = "normal"
	PhysicalChallenged PhysicalStatus = "physically_challenged"
)

type Diet string

const (
	DietVegetarian    Diet = "vegetarian"
	DietNonVegetarian Diet = "non_vegetarian"
	DietEggetarian    Diet = "eggetarian"
	DietVegan         Diet = "vegan"
)

// Habit covers both smoking and drinking.
type Habit string

const (
	HabitNo           Habit = "no"
	HabitOccasionally Habit = "occasionally"
	HabitYes          Habit = "yes"
)

type EducationLevel string

const (
	EducationHighSchool EducationLevel = "high_school"
	EducationDiploma    EducationLevel = "diploma"
	EducationBachelors  EducationLevel = "bachelors"
	EducationMasters    EducationLevel = "masters"
	EducationDoctorate  EducationLevel = "doctorate"
	EducationOther      EducationLevel = "other"
)

type EmploymentType string

const (
	EmploymentPrivate      EmploymentType = "private"
	EmploymentGovernment   EmploymentType = "government"
	EmploymentBusiness     EmploymentType = "business"
	EmploymentSelfEmployed EmploymentType = "self_employed"
	EmploymentNotWorking   EmploymentType = "not_working"
)

// IncomeBucket is a monthly income range in LKR.
type IncomeBucket string

const (
	IncomeBelow50k   IncomeBucket = "below_50k"
	Income50kTo100k  IncomeBucket = "50k_100k"
	Income100kTo200k IncomeBucket = "100k_200k"
	Income200kTo500k IncomeBucket = "200k_500k"
	IncomeAbove500k  IncomeBucket = "above_500k"
)

type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityMatches Visibility = "matches"
	VisibilityPremium Visibility = "premium"
	VisibilityHidden  Visibility = "hidden"
)

// Role is the account role carried in the session.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)
