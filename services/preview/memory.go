package preview

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps staged bytes in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[Handle]Blob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[Handle]Blob)}
}

func (s *MemoryStore) Acquire(_ context.Context, data []byte, contentType string) (Handle, error) {
	h := Handle("blob-" + uuid.NewString())
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.blobs[h] = Blob{Data: buf, ContentType: contentType}
	s.mu.Unlock()
	return h, nil
}

func (s *MemoryStore) Release(_ context.Context, h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[h]; !ok {
		return ErrUnknownHandle
	}
	delete(s.blobs, h)
	return nil
}

func (s *MemoryStore) Open(_ context.Context, h Handle) (*Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return &b, nil
}

// Outstanding returns the number of handles not yet released.
func (s *MemoryStore) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
