package photos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"matrimonial/models"
	"matrimonial/services/preview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps the memory store and records every acquire/release.
type countingStore struct {
	*preview.MemoryStore
	acquired map[preview.Handle]int
	released map[preview.Handle]int
	failNext bool
	failOn   int
	calls    int
}

func newCountingStore() *countingStore {
	return &countingStore{
		MemoryStore: preview.NewMemoryStore(),
		acquired:    map[preview.Handle]int{},
		released:    map[preview.Handle]int{},
	}
}

func (s *countingStore) Acquire(ctx context.Context, data []byte, ct string) (preview.Handle, error) {
	s.calls++
	if s.failNext || s.calls == s.failOn {
		s.failNext = false
		return "", errors.New("store down")
	}
	h, err := s.MemoryStore.Acquire(ctx, data, ct)
	if err == nil {
		s.acquired[h]++
	}
	return h, err
}

func (s *countingStore) Release(ctx context.Context, h preview.Handle) error {
	s.released[h]++
	return s.MemoryStore.Release(ctx, h)
}

func (s *countingStore) assertBalanced(t *testing.T) {
	t.Helper()
	for h, n := range s.acquired {
		assert.Equal(t, 1, n, "acquired %s", h)
		assert.Equal(t, 1, s.released[h], "released %s", h)
	}
	assert.Len(t, s.released, len(s.acquired))
	assert.Equal(t, 0, s.Outstanding())
}

func jpeg(name string) File {
	return File{Name: name, ContentType: "image/jpeg", Data: []byte("\xff\xd8\xff" + name)}
}

func primaries(entries []Entry) []int {
	var out []int
	for i, e := range entries {
		if e.IsPrimary {
			out = append(out, i)
		}
	}
	return out
}

func TestAddSevenTruncatesToSix(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := NewManager(store)

	files := make([]File, 7)
	for i := range files {
		files[i] = jpeg(fmt.Sprintf("p%d.jpg", i))
	}
	res, err := m.Add(ctx, files)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Added)
	assert.Equal(t, 1, res.Truncated)
	assert.Empty(t, res.Rejected)
	assert.Len(t, res.Messages(), 1)

	entries := m.Entries()
	require.Len(t, entries, 6)
	assert.Equal(t, []int{0}, primaries(entries))
	for _, e := range entries {
		assert.True(t, e.Pending())
		assert.Equal(t, e.Handle.URL(), e.DisplayURL)
	}
	assert.Equal(t, 6, store.Outstanding())
}

func TestAddWhenFullRejectsBatch(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newCountingStore(), WithLimits(2, MaxFileSize))

	_, err := m.Add(ctx, []File{jpeg("a"), jpeg("b")})
	require.NoError(t, err)

	_, err = m.Add(ctx, []File{jpeg("c")})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 2, capErr.Max)
	assert.Equal(t, 2, m.Len())
}

func TestAddFiltersPerFile(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newCountingStore())

	big := File{Name: "big.jpg", ContentType: "image/jpeg", Data: bytes.Repeat([]byte{1}, MaxFileSize+1)}
	doc := File{Name: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}
	res, err := m.Add(ctx, []File{doc, big, jpeg("ok.jpg")})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	assert.Equal(t, []FileRejection{
		{Name: "cv.pdf", Reason: ReasonNotImage},
		{Name: "big.jpg", Reason: "larger than 5MB"},
	}, res.Rejected)
	// the first surviving file is primary even though it was third in the batch
	assert.Equal(t, []int{0}, primaries(m.Entries()))
}

func TestAddSniffsMissingContentType(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newCountingStore())

	png := File{Name: "x.png", Data: []byte("\x89PNG\r\n\x1a\n0000")}
	txt := File{Name: "x.txt", Data: []byte("hello world")}
	res, err := m.Add(ctx, []File{png, txt})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Added)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "x.txt", res.Rejected[0].Name)
	assert.Equal(t, "image/png", m.Entries()[0].File.ContentType)
}

func TestSecondBatchDoesNotTakePrimary(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newCountingStore())

	_, err := m.Add(ctx, []File{jpeg("a")})
	require.NoError(t, err)
	_, err = m.Add(ctx, []File{jpeg("b"), jpeg("c")})
	require.NoError(t, err)

	assert.Equal(t, []int{0}, primaries(m.Entries()))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("primary reassigns to first", func(t *testing.T) {
		store := newCountingStore()
		m := NewManager(store)
		_, err := m.Add(ctx, []File{jpeg("a"), jpeg("b"), jpeg("c")})
		require.NoError(t, err)
		require.NoError(t, m.SetPrimary(1))

		require.NoError(t, m.Remove(ctx, 1))
		entries := m.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, []int{0}, primaries(entries))
		assert.Equal(t, "a", entries[0].File.Name)
		assert.Equal(t, 2, store.Outstanding())
	})

	t.Run("non-primary keeps primary", func(t *testing.T) {
		m := NewManager(newCountingStore())
		_, err := m.Add(ctx, []File{jpeg("a"), jpeg("b"), jpeg("c")})
		require.NoError(t, err)
		require.NoError(t, m.SetPrimary(2))

		require.NoError(t, m.Remove(ctx, 0))
		entries := m.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, []int{1}, primaries(entries))
		assert.Equal(t, "c", entries[1].File.Name)
	})

	t.Run("last entry leaves empty list", func(t *testing.T) {
		store := newCountingStore()
		m := NewManager(store)
		_, err := m.Add(ctx, []File{jpeg("a")})
		require.NoError(t, err)
		require.NoError(t, m.Remove(ctx, 0))
		assert.Equal(t, 0, m.Len())
		store.assertBalanced(t)
	})

	t.Run("out of range", func(t *testing.T) {
		m := NewManager(newCountingStore())
		assert.ErrorIs(t, m.Remove(ctx, 0), ErrIndexOutOfRange)
		assert.ErrorIs(t, m.Remove(ctx, -1), ErrIndexOutOfRange)
		assert.ErrorIs(t, m.SetPrimary(3), ErrIndexOutOfRange)
	})
}

func TestLoadPersistedAndMix(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := NewManager(store)

	require.NoError(t, m.Load(ctx, []models.StoredPhoto{
		{URL: "https://cdn/a.jpg", IsVerified: true},
		{URL: "https://cdn/b.jpg"},
	}))
	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, []int{0}, primaries(entries), "a list without a primary gets one")
	assert.True(t, entries[0].IsVerified)
	assert.False(t, entries[0].Pending())

	_, err := m.Add(ctx, []File{jpeg("new")})
	require.NoError(t, err)
	pending := m.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "new", pending[0].File.Name)
	assert.Equal(t, []int{0}, primaries(m.Entries()))
}

func TestCloseReleasesEverythingOnce(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := NewManager(store)

	require.NoError(t, m.Load(ctx, []models.StoredPhoto{{URL: "https://cdn/a.jpg", IsPrimary: true}}))
	_, err := m.Add(ctx, []File{jpeg("a"), jpeg("b"), jpeg("c")})
	require.NoError(t, err)
	require.NoError(t, m.Remove(ctx, 2))

	require.NoError(t, m.Close(ctx))
	require.NoError(t, m.Close(ctx))
	store.assertBalanced(t)

	_, err = m.Add(ctx, []File{jpeg("d")})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestAddStoreFailure(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := NewManager(store)

	store.failNext = true
	res, err := m.Add(ctx, []File{jpeg("a"), jpeg("b")})
	require.Error(t, err)
	assert.Equal(t, 0, res.Added)
	assert.Equal(t, 0, m.Len())
}

func TestAddStoreFailureMidBatchStagesNothing(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore()
	m := NewManager(store)
	_, err := m.Add(ctx, []File{jpeg("a")})
	require.NoError(t, err)

	store.failOn = 3
	res, err := m.Add(ctx, []File{jpeg("b"), jpeg("c"), jpeg("d")})
	require.ErrorContains(t, err, "failed to stage c")
	assert.Equal(t, AddResult{}, res)
	assert.Equal(t, 1, m.Len())
	assert.Len(t, m.Pending(), 1)
	assert.Equal(t, []int{0}, primaries(m.Entries()))
	assert.Equal(t, 1, store.Outstanding())

	require.NoError(t, m.Close(ctx))
	store.assertBalanced(t)
}

func TestTooLargeReasonFollowsLimit(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newCountingStore(), WithLimits(MaxPhotos, 1<<20))

	res, err := m.Add(ctx, []File{{Name: "big.jpg", ContentType: "image/jpeg", Data: bytes.Repeat([]byte{1}, 1<<20+1)}})
	require.NoError(t, err)
	assert.Equal(t, []FileRejection{{Name: "big.jpg", Reason: "larger than 1MB"}}, res.Rejected)

	assert.Equal(t, "larger than 5MB", TooLargeReason(MaxFileSize))
	assert.Equal(t, "larger than 512KB", TooLargeReason(512<<10))
	assert.Equal(t, "larger than 1000 bytes", TooLargeReason(1000))
}
