package photos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"matrimonial/models"
	"matrimonial/services/preview"

	"go.uber.org/zap"
)

const (
	// MaxPhotos is the number of photos a profile may hold.
	MaxPhotos = 6
	// MaxFileSize is the per-file upload limit.
	MaxFileSize = 5 << 20
)

// File is a candidate photo picked by the user.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Entry is one staged photo. Persisted photos have no File and no Handle.
type Entry struct {
	DisplayURL string         `json:"displayUrl"`
	PublicID   string         `json:"publicId,omitempty"`
	Handle     preview.Handle `json:"-"`
	File       *File          `json:"-"`
	IsPrimary  bool           `json:"isPrimary"`
	IsVerified bool           `json:"isVerified"`
}

// Pending reports whether the entry still has to be uploaded.
func (e Entry) Pending() bool {
	return e.File != nil
}

// AddResult describes what happened to a batch.
type AddResult struct {
	Added     int
	Rejected  []FileRejection
	Truncated int
}

// Messages renders the per-file rejections and the truncation notice for the user.
func (r AddResult) Messages() []string {
	var out []string
	for _, rej := range r.Rejected {
		out = append(out, rej.Error())
	}
	if r.Truncated > 0 {
		out = append(out, fmt.Sprintf("Only %d photos are allowed; %d file(s) were skipped.", MaxPhotos, r.Truncated))
	}
	return out
}

type Option func(*Manager)

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithLimits overrides the slot count and per-file size.
func WithLimits(maxCount int, maxSize int64) Option {
	return func(m *Manager) {
		m.maxCount = maxCount
		m.maxSize = maxSize
	}
}

// Manager holds the staged photo list for one wizard session. It is not safe for
// concurrent use; the owning session serialises calls.
type Manager struct {
	store    preview.Store
	logger   *zap.Logger
	maxCount int
	maxSize  int64
	entries  []Entry
	closed   bool
}

func NewManager(store preview.Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		logger:   zap.NewNop(),
		maxCount: MaxPhotos,
		maxSize:  MaxFileSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load replaces the staged list with already-persisted photos.
func (m *Manager) Load(ctx context.Context, persisted []models.StoredPhoto) error {
	if m.closed {
		return ErrClosed
	}
	_ = m.releaseAll(ctx)
	m.entries = m.entries[:0]
	for _, p := range persisted {
		if len(m.entries) == m.maxCount {
			break
		}
		m.entries = append(m.entries, Entry{
			DisplayURL: p.URL,
			PublicID:   p.PublicID,
			IsPrimary:  p.IsPrimary,
			IsVerified: p.IsVerified,
		})
	}
	m.normalizePrimary()
	return nil
}

// Add stages a batch. A full list rejects the batch with a CapacityError; otherwise
// invalid files are skipped and survivors beyond the free slots are dropped. If a
// preview cannot be created the batch stages nothing.
func (m *Manager) Add(ctx context.Context, files []File) (AddResult, error) {
	var res AddResult
	if m.closed {
		return res, ErrClosed
	}
	remaining := m.maxCount - len(m.entries)
	if remaining <= 0 {
		return res, &CapacityError{Max: m.maxCount}
	}

	accepted := make([]File, 0, len(files))
	for _, f := range files {
		ct := f.ContentType
		if ct == "" && len(f.Data) > 0 {
			ct = http.DetectContentType(f.Data)
		}
		switch {
		case !strings.HasPrefix(ct, "image/"):
			res.Rejected = append(res.Rejected, FileRejection{Name: f.Name, Reason: ReasonNotImage})
		case int64(len(f.Data)) > m.maxSize:
			res.Rejected = append(res.Rejected, FileRejection{Name: f.Name, Reason: TooLargeReason(m.maxSize)})
		default:
			f.ContentType = ct
			accepted = append(accepted, f)
		}
	}
	if len(accepted) > remaining {
		res.Truncated = len(accepted) - remaining
		accepted = accepted[:remaining]
	}

	before := len(m.entries)
	wasEmpty := before == 0
	for i := range accepted {
		f := accepted[i]
		h, err := m.store.Acquire(ctx, f.Data, f.ContentType)
		if err != nil {
			m.rollback(ctx, before)
			return AddResult{}, fmt.Errorf("failed to stage %s: %w", f.Name, err)
		}
		m.entries = append(m.entries, Entry{
			DisplayURL: h.URL(),
			Handle:     h,
			File:       &f,
			IsPrimary:  wasEmpty && i == 0,
		})
		res.Added++
	}

	m.logger.Debug("photos staged",
		zap.Int("added", res.Added),
		zap.Int("rejected", len(res.Rejected)),
		zap.Int("truncated", res.Truncated),
		zap.Int("total", len(m.entries)))
	return res, nil
}

// rollback releases the previews staged after the first n entries and drops them.
func (m *Manager) rollback(ctx context.Context, n int) {
	for _, e := range m.entries[n:] {
		if err := m.store.Release(ctx, e.Handle); err != nil {
			m.logger.Warn("failed to release preview", zap.String("handle", string(e.Handle)), zap.Error(err))
		}
	}
	m.entries = m.entries[:n]
}

// Remove drops the entry at index, releasing its preview. If it was primary the
// new first entry takes over.
func (m *Manager) Remove(ctx context.Context, index int) error {
	if m.closed {
		return ErrClosed
	}
	if index < 0 || index >= len(m.entries) {
		return ErrIndexOutOfRange
	}
	removed := m.entries[index]
	m.entries = append(m.entries[:index], m.entries[index+1:]...)

	if removed.Handle != "" {
		if err := m.store.Release(ctx, removed.Handle); err != nil {
			m.logger.Warn("failed to release preview", zap.String("handle", string(removed.Handle)), zap.Error(err))
		}
	}
	if removed.IsPrimary && len(m.entries) > 0 {
		m.entries[0].IsPrimary = true
	}
	return nil
}

// SetPrimary marks index as the only primary entry.
func (m *Manager) SetPrimary(index int) error {
	if m.closed {
		return ErrClosed
	}
	if index < 0 || index >= len(m.entries) {
		return ErrIndexOutOfRange
	}
	for i := range m.entries {
		m.entries[i].IsPrimary = i == index
	}
	return nil
}

// Entries returns a copy of the staged list.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Manager) Len() int {
	return len(m.entries)
}

// Pending returns the entries that still carry local bytes, in list order.
func (m *Manager) Pending() []Entry {
	var out []Entry
	for _, e := range m.entries {
		if e.Pending() {
			out = append(out, e)
		}
	}
	return out
}

// Close releases every outstanding preview. Calling it again is a no-op.
func (m *Manager) Close(ctx context.Context) error {
	if m.closed {
		return nil
	}
	m.closed = true
	err := m.releaseAll(ctx)
	m.entries = nil
	return err
}

func (m *Manager) releaseAll(ctx context.Context) error {
	var errs []error
	for i := range m.entries {
		h := m.entries[i].Handle
		if h == "" {
			continue
		}
		if err := m.store.Release(ctx, h); err != nil {
			m.logger.Warn("failed to release preview", zap.String("handle", string(h)), zap.Error(err))
			errs = append(errs, err)
		}
		m.entries[i].Handle = ""
	}
	return errors.Join(errs...)
}

// normalizePrimary keeps exactly one primary entry in a non-empty list.
func (m *Manager) normalizePrimary() {
	first := -1
	for i := range m.entries {
		if m.entries[i].IsPrimary {
			if first == -1 {
				first = i
				continue
			}
			m.entries[i].IsPrimary = false
		}
	}
	if first == -1 && len(m.entries) > 0 {
		m.entries[0].IsPrimary = true
	}
}
