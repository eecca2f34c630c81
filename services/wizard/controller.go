package wizard

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"matrimonial/models"
	"matrimonial/services/photos"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"
)

// Deps are the collaborators a Controller is built with.
type Deps struct {
	Store    ProfileStore
	Session  SessionContext
	Notifier Notifier
	Photos   *photos.Manager
	Logger   *zap.Logger
}

// Controller drives one profile wizard. It is not safe for concurrent use apart
// from Status; Session serialises access.
type Controller struct {
	store    ProfileStore
	session  SessionContext
	notifier Notifier
	photos   *photos.Manager
	logger   *zap.Logger

	step     int
	draft    ProfileDraft
	errMsg   string
	editMode bool

	// storedPhotos is the persisted photo list as last loaded or saved.
	storedPhotos []models.PhotoRef

	statusMu   sync.Mutex
	loading    bool
	statusText string

	submitting bool
	submitted  bool
}

// New builds a controller in create mode. Accounts that cannot own a profile are
// turned away with ErrNotApplicable.
func New(deps Deps) (*Controller, error) {
	if deps.Store == nil || deps.Session == nil || deps.Photos == nil {
		return nil, errors.New("wizard: store, session and photos are required")
	}
	if role := deps.Session.CurrentUser().Role; role != models.RoleMember {
		return nil, ErrNotApplicable
	}
	c := &Controller{
		store:    deps.Store,
		session:  deps.Session,
		notifier: deps.Notifier,
		photos:   deps.Photos,
		logger:   deps.Logger,
		step:     1,
		draft:    NewDraft(),
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

// Open loads the caller's stored profile, switching to edit mode when one exists.
func (c *Controller) Open(ctx context.Context) error {
	c.setStatus(true, "Loading your profile...")
	defer c.setStatus(false, "")

	existing, err := c.store.FetchMine(ctx)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	return c.Hydrate(ctx, existing)
}

// Hydrate replaces the draft with the defaults overlaid by p. A nil profile keeps
// create mode.
func (c *Controller) Hydrate(ctx context.Context, p *models.Profile) error {
	c.draft = hydrateDraft(p)
	c.editMode = p != nil
	c.storedPhotos = nil
	if p == nil {
		return nil
	}
	if err := c.photos.Load(ctx, p.Photos); err != nil {
		return fmt.Errorf("failed to load photos: %w", err)
	}
	c.storedPhotos = keptPhotos(c.photos.Entries())
	c.logger.Debug("wizard hydrated", zap.String("profileID", p.ID), zap.Int("photos", len(p.Photos)))
	return nil
}

// UpdateField sets one draft field by wire name. Nested records are addressed with
// dotted paths such as "partnerPreferences.ageRange". The draft is left unchanged
// when the name is unknown or the value does not fit.
func (c *Controller) UpdateField(name string, value any) error {
	input, err := fieldInput(name, value)
	if err != nil {
		return err
	}

	next := c.draft.clone()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &next,
		TagName:          "json",
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("wizard: failed to build decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("invalid value for %s: %w", name, err)
	}

	next.normalizeSets()
	c.draft = next
	c.errMsg = ""
	return nil
}

// fieldInput turns "a.b.c" = v into {"a": {"b": {"c": v}}} after checking the
// path names a draft field.
func fieldInput(name string, value any) (map[string]any, error) {
	parts := strings.Split(strings.TrimSpace(name), ".")
	if !knownField(reflect.TypeOf(ProfileDraft{}), parts) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	var node any = value
	for i := len(parts) - 1; i >= 0; i-- {
		node = map[string]any{parts[i]: node}
	}
	return node.(map[string]any), nil
}

func knownField(t reflect.Type, parts []string) bool {
	for _, part := range parts {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if part == "" || t.Kind() != reflect.Struct {
			return false
		}
		found := false
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if f.IsExported() && tag == part {
				t = f.Type
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ToggleItem adds item to a set-valued field, or removes it if already present.
func (c *Controller) ToggleItem(name, item string) error {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil
	}
	set, ok := c.draft.setField(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotASetField, name)
	}
	*set = set.Toggle(item)
	c.errMsg = ""
	return nil
}

// ValidateStep checks the step's required fields. On failure the error message
// names every missing field.
func (c *Controller) ValidateStep(index int) bool {
	return c.checkStep(index) == nil
}

func (c *Controller) checkStep(index int) *ValidationError {
	missing := missingFields(&c.draft, index)
	if len(missing) == 0 {
		return nil
	}
	verr := &ValidationError{Step: index, Missing: missing}
	c.errMsg = verr.Error()
	return verr
}

// Advance moves to the next step once the current one validates.
func (c *Controller) Advance() error {
	if verr := c.checkStep(c.step); verr != nil {
		return verr
	}
	if c.step < StepCount {
		c.step++
	}
	c.notifier.ScrollToTop()
	return nil
}

// Retreat moves one step back; it never validates.
func (c *Controller) Retreat() {
	if c.step > 1 {
		c.step--
	}
	c.notifier.ScrollToTop()
}

// JumpTo goes back to an already visited step. Forward jumps are ignored.
func (c *Controller) JumpTo(index int) bool {
	if index < 1 || index >= c.step {
		return false
	}
	c.step = index
	c.notifier.ScrollToTop()
	return true
}

// Serialize returns the wire payload for the current draft.
func (c *Controller) Serialize() models.ProfilePayload {
	return serializeDraft(&c.draft)
}

// AddPhotos stages a batch and alerts the user about anything that was skipped.
func (c *Controller) AddPhotos(ctx context.Context, files []photos.File) (photos.AddResult, error) {
	res, err := c.photos.Add(ctx, files)
	var capErr *photos.CapacityError
	if errors.As(err, &capErr) {
		c.notifier.Alert(capErr.Error())
		return res, err
	}
	for _, msg := range res.Messages() {
		c.notifier.Alert(msg)
	}
	return res, err
}

func (c *Controller) RemovePhoto(ctx context.Context, index int) error {
	return c.photos.Remove(ctx, index)
}

func (c *Controller) SetPrimaryPhoto(index int) error {
	return c.photos.SetPrimary(index)
}

// Close releases every staged preview.
func (c *Controller) Close(ctx context.Context) error {
	return c.photos.Close(ctx)
}

func (c *Controller) Step() int { return c.step }

func (c *Controller) EditMode() bool { return c.editMode }

// Error is the transient message from the last failed validation or submit.
func (c *Controller) Error() string { return c.errMsg }

func (c *Controller) Submitted() bool { return c.submitted }

// Draft returns a deep copy of the current draft.
func (c *Controller) Draft() ProfileDraft {
	return c.draft.clone()
}

// Status is the loading flag and progress text. Safe to call while Submit runs.
type Status struct {
	Loading bool   `json:"loading"`
	Text    string `json:"text,omitempty"`
}

func (c *Controller) Status() Status {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	return Status{Loading: c.loading, Text: c.statusText}
}

func (c *Controller) setStatus(loading bool, text string) {
	c.statusMu.Lock()
	c.loading = loading
	c.statusText = text
	c.statusMu.Unlock()
	if text != "" {
		c.notifier.Progress(text)
	}
}

// State is a snapshot for rendering.
type State struct {
	Step     int            `json:"step"`
	Steps    []Step         `json:"steps"`
	EditMode bool           `json:"editMode"`
	Error    string         `json:"error,omitempty"`
	Status   Status         `json:"status"`
	Draft    ProfileDraft   `json:"draft"`
	Photos   []photos.Entry `json:"photos"`
}

func (c *Controller) State() State {
	return State{
		Step:     c.step,
		Steps:    Steps(),
		EditMode: c.editMode,
		Error:    c.errMsg,
		Status:   c.Status(),
		Draft:    c.Draft(),
		Photos:   c.photos.Entries(),
	}
}
