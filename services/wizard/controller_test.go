package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"matrimonial/models"
	"matrimonial/services/photos"
	"matrimonial/services/preview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsNonMembers(t *testing.T) {
	log := &callLog{}
	admin := &fakeSession{log: log, user: models.SessionUser{ID: "a-1", Role: models.RoleAdmin}}
	_, err := New(Deps{
		Store:   &fakeStore{log: log},
		Session: admin,
		Photos:  photos.NewManager(preview.NewMemoryStore()),
	})
	assert.ErrorIs(t, err, ErrNotApplicable)
	assert.Empty(t, log.list())
}

func TestNewDraftDefaults(t *testing.T) {
	h := newHarness(t)
	d := h.ctrl.Draft()

	assert.Equal(t, 1, h.ctrl.Step())
	assert.False(t, h.ctrl.EditMode())
	assert.Equal(t, DefaultCountry, d.Country)
	assert.Equal(t, Height{Feet: 5, Inches: 6}, d.Height)
	assert.Equal(t, 21, *d.PartnerPreferences.AgeRange.Min)
	assert.Equal(t, 35, *d.PartnerPreferences.AgeRange.Max)
	assert.Equal(t, 150, *d.PartnerPreferences.HeightRange.Min)
	assert.Equal(t, 180, *d.PartnerPreferences.HeightRange.Max)
	assert.Equal(t, models.VisibilityAll, d.PrivacySettings.PhotoVisibility)
	assert.Equal(t, models.VisibilityAll, d.PrivacySettings.ProfileVisibility)
}

func TestValidateStep(t *testing.T) {
	t.Run("optional steps always pass", func(t *testing.T) {
		h := newHarness(t)
		for _, i := range []int{2, 4, 5} {
			assert.True(t, h.ctrl.ValidateStep(i), "step %d", i)
		}
		assert.Empty(t, h.ctrl.Error())
	})

	t.Run("step 1 names every missing field", func(t *testing.T) {
		h := newHarness(t)
		assert.False(t, h.ctrl.ValidateStep(1))
		assert.Equal(t,
			"Please fill in the required fields: Full Name, Gender, Date of Birth, Marital Status, Religion",
			h.ctrl.Error())
	})

	t.Run("step 3 keeps the default country", func(t *testing.T) {
		h := newHarness(t)
		assert.False(t, h.ctrl.ValidateStep(3))
		assert.Equal(t, "Please fill in the required fields: City, Education, Occupation", h.ctrl.Error())
	})

	t.Run("whitespace counts as missing", func(t *testing.T) {
		h := newHarness(t)
		h.fillRequired(t)
		require.NoError(t, h.ctrl.UpdateField("fullName", "   "))
		assert.False(t, h.ctrl.ValidateStep(1))
		assert.Equal(t, "Please fill in the required fields: Full Name", h.ctrl.Error())
	})

	t.Run("editing clears the message", func(t *testing.T) {
		h := newHarness(t)
		h.ctrl.ValidateStep(1)
		require.NoError(t, h.ctrl.UpdateField("fullName", "Kasun"))
		assert.Empty(t, h.ctrl.Error())
	})
}

func TestNavigation(t *testing.T) {
	h := newHarness(t)

	err := h.ctrl.Advance()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Step)
	assert.Equal(t, 1, h.ctrl.Step())
	assert.Empty(t, h.eventsOf(EventScrollTop))

	h.fillRequired(t)
	for want := 2; want <= StepCount; want++ {
		require.NoError(t, h.ctrl.Advance())
		assert.Equal(t, want, h.ctrl.Step())
	}
	require.NoError(t, h.ctrl.Advance())
	assert.Equal(t, StepCount, h.ctrl.Step(), "advance stops at the last step")
	assert.Len(t, h.eventsOf(EventScrollTop), StepCount)

	assert.False(t, h.ctrl.JumpTo(5), "current step")
	assert.False(t, h.ctrl.JumpTo(0))
	assert.True(t, h.ctrl.JumpTo(2))
	assert.Equal(t, 2, h.ctrl.Step())
	assert.False(t, h.ctrl.JumpTo(4), "forward jump")
	assert.Equal(t, 2, h.ctrl.Step())

	h.ctrl.Retreat()
	h.ctrl.Retreat()
	assert.Equal(t, 1, h.ctrl.Step())
	assert.Len(t, h.eventsOf(EventScrollTop), 3)
}

func TestRetreatSkipsValidation(t *testing.T) {
	h := newHarness(t)
	h.fillRequired(t)
	require.NoError(t, h.ctrl.Advance())
	require.NoError(t, h.ctrl.Advance())
	require.NoError(t, h.ctrl.UpdateField("city", ""))

	h.ctrl.Retreat()
	assert.Equal(t, 2, h.ctrl.Step())
	assert.Empty(t, h.ctrl.Error())
}

func TestUpdateField(t *testing.T) {
	t.Run("top level and nested paths", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.ctrl.UpdateField("fullName", "Kasun Silva"))
		require.NoError(t, h.ctrl.UpdateField("height.feet", 6))
		require.NoError(t, h.ctrl.UpdateField("weight", "72"))
		require.NoError(t, h.ctrl.UpdateField("partnerPreferences.ageRange", map[string]any{"min": 25}))
		require.NoError(t, h.ctrl.UpdateField("privacySettings.showPhone", true))

		d := h.ctrl.Draft()
		assert.Equal(t, "Kasun Silva", d.FullName)
		assert.Equal(t, Height{Feet: 6, Inches: 6}, d.Height)
		assert.Equal(t, 72, d.Weight)
		assert.Equal(t, 25, *d.PartnerPreferences.AgeRange.Min)
		assert.Equal(t, 35, *d.PartnerPreferences.AgeRange.Max)
		assert.True(t, d.PrivacySettings.ShowPhone)
	})

	t.Run("set fields are deduplicated", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.ctrl.UpdateField("hobbies", []any{"music", "music", " ", "cricket"}))
		assert.Equal(t, StringSet{"music", "cricket"}, h.ctrl.Draft().Hobbies)

		require.NoError(t, h.ctrl.UpdateField("hobbies", []string{"reading"}))
		assert.Equal(t, StringSet{"reading"}, h.ctrl.Draft().Hobbies)
	})

	t.Run("unknown field leaves the draft alone", func(t *testing.T) {
		h := newHarness(t)
		before := h.ctrl.Draft()
		for _, name := range []string{"nickname", "partnerPreferences.salary", "fullName.first", "", "height."} {
			err := h.ctrl.UpdateField(name, "x")
			assert.ErrorIs(t, err, ErrUnknownField, name)
		}
		assert.Equal(t, before, h.ctrl.Draft())
	})

	t.Run("bad value leaves the draft alone", func(t *testing.T) {
		h := newHarness(t)
		before := h.ctrl.Draft()
		assert.Error(t, h.ctrl.UpdateField("weight", "heavy"))
		assert.Error(t, h.ctrl.UpdateField("height", "tall"))
		assert.Equal(t, before, h.ctrl.Draft())
	})

	t.Run("draft copies are independent", func(t *testing.T) {
		h := newHarness(t)
		d := h.ctrl.Draft()
		*d.PartnerPreferences.AgeRange.Min = 99
		d.Hobbies = append(d.Hobbies, "leaked")
		assert.Equal(t, 21, *h.ctrl.Draft().PartnerPreferences.AgeRange.Min)
		assert.Empty(t, h.ctrl.Draft().Hobbies)
	})
}

func TestToggleItem(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.ToggleItem("languages", "Sinhala"))
	require.NoError(t, h.ctrl.ToggleItem("languages", "English"))
	require.NoError(t, h.ctrl.ToggleItem("languages", "Sinhala"))
	require.NoError(t, h.ctrl.ToggleItem("languages", "Tamil"))
	assert.Equal(t, StringSet{"English", "Tamil"}, h.ctrl.Draft().Languages)

	require.NoError(t, h.ctrl.ToggleItem("partnerPreferences.religion", "Buddhist"))
	require.NoError(t, h.ctrl.ToggleItem("partnerPreferences.religion", "Christian"))
	assert.Equal(t, StringSet{"Buddhist", "Christian"}, h.ctrl.Draft().PartnerPreferences.Religion)

	require.NoError(t, h.ctrl.ToggleItem("hobbies", "  "))
	assert.Empty(t, h.ctrl.Draft().Hobbies)

	assert.ErrorIs(t, h.ctrl.ToggleItem("fullName", "x"), ErrNotASetField)
	assert.ErrorIs(t, h.ctrl.ToggleItem("partnerPreferences.ageRange", "x"), ErrNotASetField)
}

func TestOpen(t *testing.T) {
	t.Run("no stored profile stays in create mode", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.ctrl.Open(context.Background()))
		assert.False(t, h.ctrl.EditMode())
		assert.Equal(t, NewDraft(), h.ctrl.Draft())
		assert.Equal(t, []string{"fetch"}, h.log.list())
		assert.Contains(t, h.eventsOf(EventProgress), "Loading your profile...")
		assert.False(t, h.ctrl.Status().Loading)
	})

	t.Run("fetch failure", func(t *testing.T) {
		h := newHarness(t)
		h.store.fetchErr = errors.New("db down")
		err := h.ctrl.Open(context.Background())
		assert.ErrorContains(t, err, "db down")
		assert.False(t, h.ctrl.Status().Loading)
	})

	t.Run("stored profile overlays defaults", func(t *testing.T) {
		h := newHarness(t)
		dob := time.Date(1992, 3, 9, 0, 0, 0, 0, time.UTC)
		visible := models.VisibilityMatches
		yes := true
		h.store.profile = &models.Profile{
			ID:          "p-1",
			UserID:      "user-1",
			FullName:    "Dilani Fernando",
			DateOfBirth: &dob,
			Religion:    "Catholic",
			Hobbies:     []string{"dancing", "dancing"},
			City:        "Kandy",
			PartnerPreferences: &models.StoredPartnerPreferences{
				Religion: []string{"Catholic"},
			},
			PrivacySettings: &models.StoredPrivacySettings{
				ShowEmail:         &yes,
				ProfileVisibility: &visible,
			},
			Photos: []models.StoredPhoto{
				{URL: "https://cdn.example.com/a.jpg", PublicID: "a"},
				{URL: "https://cdn.example.com/b.jpg", PublicID: "b", IsPrimary: true},
			},
		}
		require.NoError(t, h.ctrl.Open(context.Background()))

		d := h.ctrl.Draft()
		assert.True(t, h.ctrl.EditMode())
		assert.Equal(t, "Dilani Fernando", d.FullName)
		assert.Equal(t, "1992-03-09", d.DateOfBirth)
		assert.Equal(t, StringSet{"dancing"}, d.Hobbies)
		assert.Equal(t, DefaultCountry, d.Country)
		assert.Equal(t, "Kandy", d.City)
		assert.Equal(t, Height{Feet: 5, Inches: 6}, d.Height)
		assert.Equal(t, StringSet{"Catholic"}, d.PartnerPreferences.Religion)
		assert.Equal(t, 21, *d.PartnerPreferences.AgeRange.Min)
		assert.True(t, d.PrivacySettings.ShowEmail)
		assert.False(t, d.PrivacySettings.ShowPhone)
		assert.Equal(t, models.VisibilityMatches, d.PrivacySettings.ProfileVisibility)
		assert.Equal(t, models.VisibilityAll, d.PrivacySettings.PhotoVisibility)

		entries := h.ctrl.State().Photos
		require.Len(t, entries, 2)
		assert.Equal(t, "https://cdn.example.com/a.jpg", entries[0].DisplayURL)
		assert.True(t, entries[1].IsPrimary)
		assert.False(t, entries[0].IsPrimary)
	})
}

func TestLegacyHeightRoundTrip(t *testing.T) {
	cases := []struct {
		cm   int
		want Height
	}{
		{168, Height{Feet: 5, Inches: 6}},
		{180, Height{Feet: 5, Inches: 11}},
		{152, Height{Feet: 5, Inches: 0}},
	}
	for _, tc := range cases {
		h := newHarness(t)
		require.NoError(t, h.ctrl.Hydrate(context.Background(), &models.Profile{
			ID:     "p",
			Height: &models.StoredHeight{Cm: intPtr(tc.cm)},
		}))
		assert.Equal(t, tc.want, h.ctrl.Draft().Height, "%dcm", tc.cm)

		out := h.ctrl.Serialize().Height
		assert.Equal(t, tc.want.Feet, out.Feet)
		assert.Equal(t, tc.want.Inches, out.Inches)
		assert.Equal(t, tc.cm, out.Cm, "no drift for %dcm", tc.cm)
	}
}

func TestStructuredHeightWins(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.ctrl.Hydrate(context.Background(), &models.Profile{
		ID:     "p",
		Height: &models.StoredHeight{Feet: intPtr(6), Inches: intPtr(1), Cm: intPtr(100)},
	}))
	assert.Equal(t, Height{Feet: 6, Inches: 1}, h.ctrl.Draft().Height)
}

func TestSerialize(t *testing.T) {
	t.Run("sparse payload", func(t *testing.T) {
		h := newHarness(t)
		h.fillRequired(t)
		require.NoError(t, h.ctrl.UpdateField("bio", "  "))

		raw, err := json.Marshal(h.ctrl.Serialize())
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))

		for _, absent := range []string{"caste", "subCaste", "bio", "weight", "hobbies", "monthlyIncome"} {
			assert.NotContains(t, body, absent)
		}
		assert.Equal(t, "Nadeesha Perera", body["fullName"])
		assert.Equal(t, "Sri Lanka", body["country"])
		assert.Equal(t, map[string]any{"feet": 5.0, "inches": 6.0, "cm": 168.0}, body["height"])

		prefs := body["partnerPreferences"].(map[string]any)
		assert.Equal(t, map[string]any{"min": 21.0, "max": 35.0}, prefs["ageRange"])
		assert.NotContains(t, prefs, "religion")

		privacy := body["privacySettings"].(map[string]any)
		assert.Equal(t, "all", privacy["photoVisibility"])
		assert.Equal(t, "all", privacy["profileVisibility"])
		assert.Equal(t, false, privacy["showPhone"])
	})

	t.Run("height fallback", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.ctrl.UpdateField("height", map[string]any{"feet": 0, "inches": 14}))
		assert.Equal(t, models.HeightPayload{Feet: 5, Inches: 6, Cm: 168}, h.ctrl.Serialize().Height)

		require.NoError(t, h.ctrl.UpdateField("height", map[string]any{"feet": 6, "inches": 0}))
		assert.Equal(t, models.HeightPayload{Feet: 6, Inches: 0, Cm: 183}, h.ctrl.Serialize().Height)
	})

	t.Run("cleared visibility falls back to all", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.ctrl.UpdateField("privacySettings.photoVisibility", ""))
		assert.Equal(t, models.VisibilityAll, h.ctrl.Serialize().PrivacySettings.PhotoVisibility)
	})

	t.Run("weight only when positive", func(t *testing.T) {
		h := newHarness(t)
		require.NoError(t, h.ctrl.UpdateField("weight", 64))
		require.NotNil(t, h.ctrl.Serialize().Weight)
		assert.Equal(t, 64, *h.ctrl.Serialize().Weight)
	})
}

func TestAddPhotosAlerts(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	files := make([]photos.File, 7)
	for i := range files {
		files[i] = jpegFile(string(rune('a' + i)))
	}
	res, err := h.ctrl.AddPhotos(ctx, files)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Added)
	assert.Equal(t, 1, res.Truncated)
	assert.Len(t, h.eventsOf(EventAlert), 1)

	_, err = h.ctrl.AddPhotos(ctx, []photos.File{jpegFile("h")})
	var capErr *photos.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, []string{"you can upload a maximum of 6 photos"}, h.eventsOf(EventAlert))
}

func TestRemovePrimaryPhoto(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	_, err := h.ctrl.AddPhotos(ctx, []photos.File{jpegFile("a"), jpegFile("b"), jpegFile("c")})
	require.NoError(t, err)
	require.NoError(t, h.ctrl.SetPrimaryPhoto(1))

	require.NoError(t, h.ctrl.RemovePhoto(ctx, 1))
	entries := h.ctrl.State().Photos
	require.Len(t, entries, 2)
	assert.True(t, entries[0].IsPrimary)
	assert.False(t, entries[1].IsPrimary)
	assert.Equal(t, 2, h.previews.Outstanding())

	assert.ErrorIs(t, h.ctrl.RemovePhoto(ctx, 5), photos.ErrIndexOutOfRange)

	require.NoError(t, h.ctrl.Close(ctx))
	assert.Equal(t, 0, h.previews.Outstanding())
}
