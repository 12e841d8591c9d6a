package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and throwaway sessions.
// It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[key]
	return data, ok
}

func (s *MemoryStore) put(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[key] = cp
}

func (s *MemoryStore) GetGraph(ctx context.Context) ([]byte, bool, error) {
	data, ok := s.get(keyGraph)
	return data, ok, nil
}

func (s *MemoryStore) PutGraph(ctx context.Context, data []byte) error {
	s.put(keyGraph, data)
	return nil
}

func (s *MemoryStore) GetEntity(ctx context.Context, id string) ([]byte, bool, error) {
	data, ok := s.get(keyEntity + id)
	return data, ok, nil
}

func (s *MemoryStore) PutEntity(ctx context.Context, id string, data []byte) error {
	s.put(keyEntity+id, data)
	return nil
}

func (s *MemoryStore) GetHistory(ctx context.Context) ([]byte, bool, error) {
	data, ok := s.get(keyHistory)
	return data, ok, nil
}

func (s *MemoryStore) PutHistory(ctx context.Context, data []byte) error {
	s.put(keyHistory, data)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
