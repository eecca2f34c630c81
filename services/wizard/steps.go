package wizard

import (
	"strings"
)

// StepCount is the number of wizard steps.
const StepCount = 5

// requiredField is a mandatory field: its wire name, the label shown to the user,
// and how to read it from the draft.
type requiredField struct {
	Name  string
	Label string
	value func(*ProfileDraft) string
}

// Step is one screen of the wizard.
type Step struct {
	Index    int    `json:"index"`
	Title    string `json:"title"`
	required []requiredField
}

// RequiredFields returns the wire names a step cannot be left without.
func (s Step) RequiredFields() []string {
	out := make([]string, 0, len(s.required))
	for _, f := range s.required {
		out = append(out, f.Name)
	}
	return out
}

var steps = []Step{
	{
		Index: 1,
		Title: "Basic Details",
		required: []requiredField{
			{"fullName", "Full Name", func(d *ProfileDraft) string { return d.FullName }},
			{"gender", "Gender", func(d *ProfileDraft) string { return string(d.Gender) }},
			{"dateOfBirth", "Date of Birth", func(d *ProfileDraft) string { return d.DateOfBirth }},
			{"maritalStatus", "Marital Status", func(d *ProfileDraft) string { return string(d.MaritalStatus) }},
			{"religion", "Religion", func(d *ProfileDraft) string { return d.Religion }},
		},
	},
	{Index: 2, Title: "Lifestyle"},
	{
		Index: 3,
		Title: "Location & Career",
		required: []requiredField{
			{"country", "Country", func(d *ProfileDraft) string { return d.Country }},
			{"city", "City", func(d *ProfileDraft) string { return d.City }},
			{"education", "Education", func(d *ProfileDraft) string { return string(d.Education) }},
			{"occupation", "Occupation", func(d *ProfileDraft) string { return d.Occupation }},
		},
	},
	{Index: 4, Title: "Partner"},
	{Index: 5, Title: "Photos"},
}

// Steps returns the ordered step table.
func Steps() []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	return out
}

func stepAt(index int) (Step, bool) {
	if index < 1 || index > len(steps) {
		return Step{}, false
	}
	return steps[index-1], true
}

// missingFields lists the labels of every required field of the step that is empty.
func missingFields(d *ProfileDraft, index int) []string {
	step, ok := stepAt(index)
	if !ok {
		return nil
	}
	var missing []string
	for _, f := range step.required {
		if strings.TrimSpace(f.value(d)) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}
