package kvstore

import (
	"context"
	"sort"
	"sync"

	repo "kanap/internal/repository"
)

// メモリ上のストア（テスト・CART_STORE=memory 用）
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Entries(ctx context.Context) ([]repo.KVPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repo.KVPair, 0, len(s.entries))
	for k, v := range s.entries {
		out = append(out, repo.KVPair{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// namespaceごとに MemoryStore を持つ
type MemoryFactory struct {
	mu     sync.Mutex
	stores map[string]*MemoryStore
}

func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{stores: make(map[string]*MemoryStore)}
}

func (f *MemoryFactory) ForNamespace(namespace string) repo.KVStore {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.stores[namespace]
	if !ok {
		s = NewMemoryStore()
		f.stores[namespace] = s
	}
	return s
}
