package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jwebster45206/legacy-engine/pkg/world"
)

// MockStorage is an in-memory Storage for tests. Records are stored as JSON
// so callers never share pointers with the store.
type MockStorage struct {
	mu        sync.RWMutex
	players   map[string][]byte
	histories map[string][]string
	places    map[string][]byte
	npcs      map[string][]byte
	items     map[string][]byte
	pingError error

	// errors injected per operation name, e.g. "SavePlayer"
	failures map[string]error

	// Track calls for testing
	Calls []string
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		players:   make(map[string][]byte),
		histories: make(map[string][]string),
		places:    make(map[string][]byte),
		npcs:      make(map[string][]byte),
		items:     make(map[string][]byte),
		failures:  make(map[string]error),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// FailOn makes the named operation return err until cleared with a nil err.
func (m *MockStorage) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// CallCount returns how many times op was invoked.
func (m *MockStorage) CallCount(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.Calls {
		if c == op {
			n++
		}
	}
	return n
}

// record notes the call and returns any injected failure. Caller holds mu.
func (m *MockStorage) record(op string) error {
	m.Calls = append(m.Calls, op)
	return m.failures[op]
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) GetPlayer(ctx context.Context, name string) (*world.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetPlayer"); err != nil {
		return nil, err
	}

	key := world.Key(name)
	data, ok := m.players[key]
	if !ok {
		return nil, nil
	}
	var p world.Player
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	p.History = append([]string{}, m.histories[key]...)
	return &p, nil
}

func (m *MockStorage) SavePlayer(ctx context.Context, p *world.Player) error {
	if p == nil {
		return errors.New("player cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("SavePlayer"); err != nil {
		return err
	}

	key := world.Key(p.Name)
	profile := *p
	profile.History = nil
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	m.players[key] = data
	if len(m.histories[key]) == 0 && len(p.History) > 0 {
		m.histories[key] = append([]string{}, p.History...)
	}
	return nil
}

func (m *MockStorage) AppendToHistory(ctx context.Context, name string, entries ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("AppendToHistory"); err != nil {
		return err
	}

	key := world.Key(name)
	if _, ok := m.players[key]; !ok {
		return fmt.Errorf("player %q: %w", name, ErrNotFound)
	}
	m.histories[key] = append(m.histories[key], entries...)
	return nil
}

func (m *MockStorage) GetPlace(ctx context.Context, c world.Coordinates) (*world.Place, error) {
	var p world.Place
	ok, err := m.get("GetPlace", m.places, c.Key(), &p)
	if !ok || err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MockStorage) SavePlace(ctx context.Context, p *world.Place) error {
	if p == nil {
		return errors.New("place cannot be nil")
	}
	return m.put("SavePlace", m.places, p.Coordinates.Key(), p)
}

func (m *MockStorage) GetNPC(ctx context.Context, name string) (*world.NPC, error) {
	var n world.NPC
	ok, err := m.get("GetNPC", m.npcs, world.Key(name), &n)
	if !ok || err != nil {
		return nil, err
	}
	return &n, nil
}

func (m *MockStorage) SaveNPC(ctx context.Context, n *world.NPC) error {
	if n == nil {
		return errors.New("npc cannot be nil")
	}
	return m.put("SaveNPC", m.npcs, world.Key(n.Name), n)
}

func (m *MockStorage) GetItem(ctx context.Context, name string) (*world.GameItem, error) {
	var i world.GameItem
	ok, err := m.get("GetItem", m.items, world.Key(name), &i)
	if !ok || err != nil {
		return nil, err
	}
	return &i, nil
}

func (m *MockStorage) SaveItem(ctx context.Context, i *world.GameItem) error {
	if i == nil {
		return errors.New("item cannot be nil")
	}
	return m.put("SaveItem", m.items, world.Key(i.Name), i)
}

func (m *MockStorage) get(op string, bucket map[string][]byte, key string, v any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(op); err != nil {
		return false, err
	}
	data, ok := bucket[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (m *MockStorage) put(op string, bucket map[string][]byte, key string, v any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(op); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	bucket[key] = data
	return nil
}
