package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/cinesuggest/web/internal/model"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps sessions in process. Updates are serialised and every
// caller gets its own copy of the state.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(id)
}

func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*State) error) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.load(id)
	if err != nil {
		st = New(id)
	}
	if err := fn(st); err != nil {
		return nil, err
	}

	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	entry := memoryEntry{data: data}
	if m.ttl > 0 {
		entry.expires = time.Now().Add(m.ttl)
	}
	m.sessions[id] = entry

	return decode(data)
}

func (m *MemoryStore) load(id string) (*State, error) {
	entry, ok := m.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	if !entry.expires.IsZero() && time.Now().After(entry.expires) {
		delete(m.sessions, id)
		return nil, model.ErrSessionNotFound
	}
	return decode(entry.data)
}

func decode(data []byte) (*State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if st.Tokens == nil {
		st.Tokens = make(map[model.Region]string)
	}
	return &st, nil
}
