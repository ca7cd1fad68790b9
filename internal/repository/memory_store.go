package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// MemoryStore 本地同步存储；也充当测试替身与快照缓存实现
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]*Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]map[string]*Document{}}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.data[collection][id]
	if !ok {
		return nil, &NotFoundError{Collection: collection, ID: id}
	}
	return copyDocument(doc), nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0, len(s.data[collection]))
	for _, doc := range s.data[collection] {
		docs = append(docs, *copyDocument(doc))
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, collection, id string, patch json.RawMessage, expectedVersion int64) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[collection] == nil {
		s.data[collection] = map[string]*Document{}
	}

	existing, ok := s.data[collection][id]
	if !ok {
		if expectedVersion != VersionAny && expectedVersion != VersionNew {
			return nil, &ConflictError{Collection: collection, ID: id, ExpectedVersion: expectedVersion}
		}
		merged, err := mergePatch(nil, patch)
		if err != nil {
			return nil, err
		}
		doc := &Document{ID: id, Data: merged, Version: 1, UpdatedAt: time.Now()}
		s.data[collection][id] = doc
		return copyDocument(doc), nil
	}

	if expectedVersion == VersionNew {
		return nil, &ConflictError{Collection: collection, ID: id, ExpectedVersion: expectedVersion, ActualVersion: existing.Version}
	}
	if expectedVersion != VersionAny && expectedVersion != existing.Version {
		return nil, &ConflictError{Collection: collection, ID: id, ExpectedVersion: expectedVersion, ActualVersion: existing.Version}
	}

	merged, err := mergePatch(existing.Data, patch)
	if err != nil {
		return nil, err
	}
	existing.Data = merged
	existing.Version++
	existing.UpdatedAt = time.Now()
	return copyDocument(existing), nil
}

func (s *MemoryStore) Remove(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection][id]; !ok {
		return &NotFoundError{Collection: collection, ID: id}
	}
	delete(s.data[collection], id)
	return nil
}

func copyDocument(doc *Document) *Document {
	data := make(json.RawMessage, len(doc.Data))
	copy(data, doc.Data)
	return &Document{ID: doc.ID, Data: data, Version: doc.Version, UpdatedAt: doc.UpdatedAt}
}

// MemorySnapshotCache 进程内快照缓存（local 模式与测试使用）
type MemorySnapshotCache struct {
	mu   sync.RWMutex
	data map[string]map[string]*Document
}

func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{data: map[string]map[string]*Document{}}
}

func (c *MemorySnapshotCache) Get(ctx context.Context, collection, id string) (*Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.data[collection][id]
	if !ok {
		return nil, &NotFoundError{Collection: collection, ID: id}
	}
	return copyDocument(doc), nil
}

func (c *MemorySnapshotCache) GetAll(ctx context.Context, collection string) ([]Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.data[collection]) == 0 {
		return nil, &NotFoundError{Collection: collection, ID: "*"}
	}
	docs := make([]Document, 0, len(c.data[collection]))
	for _, doc := range c.data[collection] {
		docs = append(docs, *copyDocument(doc))
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (c *MemorySnapshotCache) Put(ctx context.Context, collection string, doc *Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.data[collection] == nil {
		c.data[collection] = map[string]*Document{}
	}
	c.data[collection][doc.ID] = copyDocument(doc)
	return nil
}

func (c *MemorySnapshotCache) PutAll(ctx context.Context, collection string, docs []Document) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[collection] = map[string]*Document{}
	for i := range docs {
		c.data[collection][docs[i].ID] = copyDocument(&docs[i])
	}
	return nil
}

func (c *MemorySnapshotCache) Remove(ctx context.Context, collection, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data[collection], id)
	return nil
}
