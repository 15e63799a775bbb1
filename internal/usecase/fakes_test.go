package usecase

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"facility-registry/internal/domain/facility"
	"facility-registry/internal/repository"
)

type mockPayloadRepo struct {
	master    []string
	edits     []string
	masterErr error
	editsErr  error
	calls     int
}

func (m *mockPayloadRepo) MasterPayloads(context.Context) ([]string, error) {
	m.calls++
	return m.master, m.masterErr
}

func (m *mockPayloadRepo) EditPayloads(context.Context) ([]string, error) {
	return m.edits, m.editsErr
}

// memCache is an in-memory SearchCache.
type memCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	locked  map[string]bool
	ints    map[string]int64
	deleted []string
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}, locked: map[string]bool{}, ints: map[string]int64{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	delete(c.locked, key)
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	for k := range c.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.items, k)
		}
	}
	return nil
}

func (c *memCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked[key] {
		return false, nil
	}
	c.locked[key] = true
	return true, nil
}

func (c *memCache) GetInt(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ints[key], nil
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ints[key]++
	return c.ints[key], nil
}

type mockSuggestionRepo struct {
	created    []facility.SuggestedEdit
	createErr  error
	listed     facility.SuggestionStatus
	list       []facility.SuggestedEdit
	processed  facility.SuggestedEdit
	processErr error
}

func (m *mockSuggestionRepo) Create(_ context.Context, edit facility.SuggestedEdit) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.created = append(m.created, edit)
	return int64(len(m.created)), nil
}

func (m *mockSuggestionRepo) List(_ context.Context, status facility.SuggestionStatus) ([]facility.SuggestedEdit, error) {
	m.listed = status
	return m.list, nil
}

func (m *mockSuggestionRepo) Process(_ context.Context, _ int64, _ facility.ModerationAction) (facility.SuggestedEdit, error) {
	return m.processed, m.processErr
}

var _ repository.SuggestionRepository = (*mockSuggestionRepo)(nil)

type mockMasterRepo struct {
	recs    []facility.MasterRecord
	saved   map[string]string
	deleted int64
	err     error
}

func (m *mockMasterRepo) List(context.Context) ([]facility.MasterRecord, error) {
	return m.recs, m.err
}

func (m *mockMasterRepo) Save(_ context.Context, name string, data string) error {
	if m.err != nil {
		return m.err
	}
	if m.saved == nil {
		m.saved = map[string]string{}
	}
	m.saved[name] = data
	return nil
}

func (m *mockMasterRepo) Delete(context.Context, string) (int64, error) {
	return m.deleted, m.err
}

type recordingNotifier struct {
	submitted []int64
	processed []facility.SuggestionStatus
}

func (n *recordingNotifier) SuggestionSubmitted(id int64, _ string) {
	n.submitted = append(n.submitted, id)
}

func (n *recordingNotifier) SuggestionProcessed(_ int64, _ string, status facility.SuggestionStatus) {
	n.processed = append(n.processed, status)
}
