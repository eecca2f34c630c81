package profile

import (
	"context"
	"testing"

	"matrimonial/models"
	"matrimonial/services/photos"
	"matrimonial/services/preview"
	"matrimonial/services/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberSession struct {
	refreshed int
}

func (s *memberSession) CurrentUser() models.SessionUser {
	return models.SessionUser{ID: "u1", Email: "u1@example.com", Role: models.RoleMember}
}

func (s *memberSession) RefreshSession(ctx context.Context) error {
	s.refreshed++
	return nil
}

func TestWizardDraftSavesThroughService(t *testing.T) {
	ctx := context.Background()
	svc, profiles, users := newTestService(nil)
	session := &memberSession{}
	ctrl, err := wizard.New(wizard.Deps{
		Store:   svc.ForUser("u1"),
		Session: session,
		Photos:  photos.NewManager(preview.NewMemoryStore()),
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, ctrl.Close(ctx)) }()
	require.NoError(t, ctrl.Open(ctx))

	for name, v := range map[string]any{
		"fullName":      "Chamari Wickramasinghe",
		"gender":        "female",
		"dateOfBirth":   "1997-03-18",
		"maritalStatus": "never_married",
		"religion":      "Buddhist",
		"bio":           "Enjoys hiking and cooking.",
		"city":          "Kandy",
		"education":     "masters",
		"occupation":    "Architect",
		"diet":          "vegetarian",
	} {
		require.NoError(t, ctrl.UpdateField(name, v))
	}

	sets := map[string][]string{
		"religion":      {"Buddhist", "Catholic"},
		"caste":         {"Govigama"},
		"education":     {"masters", "doctorate"},
		"occupation":    {"Engineer", "Doctor"},
		"maritalStatus": {"never_married", "divorced"},
		"diet":          {"vegetarian", "vegan"},
		"city":          {"Kandy", "Colombo"},
		"country":       {"Sri Lanka", "Australia"},
	}
	for set, items := range sets {
		for _, item := range items {
			require.NoError(t, ctrl.ToggleItem("partnerPreferences."+set, item))
		}
	}

	res, err := ctrl.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Nil(t, res.UploadErr)
	assert.Equal(t, 1, session.refreshed)
	assert.True(t, users.hasProfile["u1"])

	doc := profiles.byUser["u1"]
	require.NotNil(t, doc)
	pp := doc.PartnerPreferences
	assert.ElementsMatch(t, sets["religion"], pp.Religion)
	assert.ElementsMatch(t, sets["caste"], pp.Caste)
	assert.ElementsMatch(t, sets["education"], pp.Education)
	assert.ElementsMatch(t, sets["occupation"], pp.Occupation)
	assert.ElementsMatch(t, sets["maritalStatus"], pp.MaritalStatus)
	assert.ElementsMatch(t, sets["diet"], pp.Diet)
	assert.ElementsMatch(t, sets["city"], pp.City)
	assert.ElementsMatch(t, sets["country"], pp.Country)
	assert.Equal(t, "Enjoys hiking and cooking.", doc.Bio)
}

func TestWizardSerializePassesValidation(t *testing.T) {
	svc, _, _ := newTestService(nil)
	ctrl, err := wizard.New(wizard.Deps{
		Store:   svc.ForUser("u1"),
		Session: &memberSession{},
		Photos:  photos.NewManager(preview.NewMemoryStore()),
	})
	require.NoError(t, err)
	defer ctrl.Close(context.Background())

	for _, item := range []string{"high_school", "diploma", "bachelors", "masters", "doctorate", "other"} {
		require.NoError(t, ctrl.ToggleItem("partnerPreferences.education", item))
	}
	for _, item := range []string{"never_married", "divorced", "widowed", "awaiting_divorce"} {
		require.NoError(t, ctrl.ToggleItem("partnerPreferences.maritalStatus", item))
	}
	for _, item := range []string{"vegetarian", "non_vegetarian", "eggetarian", "vegan"} {
		require.NoError(t, ctrl.ToggleItem("partnerPreferences.diet", item))
	}

	assert.NoError(t, svc.validatePayload(ctrl.Serialize()))
}
