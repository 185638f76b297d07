// Package kv is the document-style persistence collaborator: a namespaced
// key-value surface with list paths, modeled on the browser-storage and
// realtime-database backends the tracker originally alternated between.
// Keys are namespaced per user with the sanitized account key.
package kv

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"expensevis/internal/core"
)

// Entry is one document under a list path.
type Entry struct {
	ID    string
	Value json.RawMessage
}

// Store is the collaborator contract: plain keys hold one document,
// path prefixes hold ordered lists of documents.
type Store interface {
	// Get returns the value at key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value json.RawMessage, ok bool, err error)
	Set(ctx context.Context, key string, value json.RawMessage) error

	// List returns the entries under pathPrefix in append order.
	List(ctx context.Context, pathPrefix string) ([]Entry, error)
	// Append adds a document under pathPrefix and returns its generated id.
	Append(ctx context.Context, pathPrefix string, value json.RawMessage) (id string, err error)
	Remove(ctx context.Context, pathPrefix, id string) error
}

// Memory is the in-process Store used by the "memory" backend and by
// tests. Append order is preserved per prefix; consumers depend on it for
// first-seen grouping and chronological display.
type Memory struct {
	mu    sync.Mutex
	docs  map[string]json.RawMessage
	lists map[string][]Entry
}

func NewMemory() *Memory {
	return &Memory{
		docs:  make(map[string]json.RawMessage),
		lists: make(map[string][]Entry),
	}
}

var _ Store = (*Memory)(nil)

func (m *Memory) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append(json.RawMessage(nil), v...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append(json.RawMessage(nil), value...)
	return nil
}

func (m *Memory) List(_ context.Context, pathPrefix string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src := m.lists[pathPrefix]
	out := make([]Entry, len(src))
	for i, e := range src {
		out[i] = Entry{ID: e.ID, Value: append(json.RawMessage(nil), e.Value...)}
	}
	return out, nil
}

func (m *Memory) Append(_ context.Context, pathPrefix string, value json.RawMessage) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.NewString()
	m.lists[pathPrefix] = append(m.lists[pathPrefix], Entry{
		ID:    id,
		Value: append(json.RawMessage(nil), value...),
	})
	return id, nil
}

func (m *Memory) Remove(_ context.Context, pathPrefix, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.lists[pathPrefix]
	for i, e := range entries {
		if e.ID == id {
			m.lists[pathPrefix] = append(entries[:i:i], entries[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

// UserPath builds a per-user list path, e.g. "expenses/jane_doe".
func UserPath(collection, account string) string {
	return collection + "/" + core.SanitizeAccountKey(account)
}
