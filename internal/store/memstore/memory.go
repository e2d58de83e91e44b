// Package memstore provides an in-memory implementation of the store interfaces.
// This implementation is designed for fast unit testing and does not persist data.
package memstore

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yiblet/vocab/internal/store"
)

// MemoryStore is an in-memory implementation of store.Store.
// It uses maps for storage and is thread-safe via a mutex.
// Data is not persisted and exists only for the lifetime of the process.
type MemoryStore struct {
	mu  sync.Mutex
	now func() time.Time

	ready     bool
	lists     map[string]*store.List
	nextList  uint
	cache     []store.CachedWord
	initCount int
}

var _ store.Store = (*MemoryStore)(nil)

// NewMemoryStore creates a new in-memory store for testing.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates an in-memory store whose notion of
// "today" comes from now.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		now:      now,
		lists:    make(map[string]*store.List),
		nextList: 1,
	}
}

// EnsureReady seeds the default list on first use.
func (m *MemoryStore) EnsureReady() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReadyLocked()
	return nil
}

// InitCount reports how many times initialization actually ran.
func (m *MemoryStore) InitCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initCount
}

func (m *MemoryStore) ensureReadyLocked() {
	if m.ready {
		return
	}
	delete(m.lists, store.DeprecatedListName)
	m.seedLocked()
	m.ready = true
	m.initCount++
}

func (m *MemoryStore) seedLocked() {
	if _, ok := m.lists[store.DefaultListName]; ok {
		return
	}
	now := m.now()
	m.lists[store.DefaultListName] = &store.List{
		ID:          m.nextList,
		Name:        store.DefaultListName,
		Description: "Words you have learned",
		Words:       []store.Word{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.nextList++
}

// Lists returns the list repository.
func (m *MemoryStore) Lists() store.ListStore {
	return (*memoryLists)(m)
}

// Cache returns the daily cache repository.
func (m *MemoryStore) Cache() store.CacheStore {
	return (*memoryCache)(m)
}

// Maintenance returns the wipe routines.
func (m *MemoryStore) Maintenance() store.Maintenance {
	return (*memoryMaintenance)(m)
}

// Close releases resources (no-op for memory store).
func (m *MemoryStore) Close() error {
	return nil
}

// lock acquires the mutex and makes sure the store is initialized.
func (m *MemoryStore) lock() {
	m.mu.Lock()
	m.ensureReadyLocked()
}

func (m *MemoryStore) today() string {
	return store.DateOf(m.now())
}

// cloneList copies l so callers cannot mutate stored state.
func cloneList(l *store.List) *store.List {
	c := *l
	c.Words = append([]store.Word{}, l.Words...)
	return &c
}

// memoryLists implements store.ListStore.
type memoryLists MemoryStore

func (l *memoryLists) CreateList(name, description string, words []store.Word) (*store.List, error) {
	m := (*MemoryStore)(l)
	m.lock()
	defer m.mu.Unlock()

	if name == store.DefaultListName {
		return nil, fmt.Errorf("create list %q: %w", name, store.ErrNameReserved)
	}
	if _, ok := m.lists[name]; ok {
		return nil, fmt.Errorf("create list %q: %w", name, store.ErrNameExists)
	}

	merged, _ := store.MergeWords(nil, words)
	now := m.now()
	list := &store.List{
		ID:          m.nextList,
		Name:        name,
		Description: description,
		Words:       merged,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.nextList++
	m.lists[name] = list
	return cloneList(list), nil
}

func (l *memoryLists) GetList(name string) (*store.List, bool, error) {
	m := (*MemoryStore)(l)
	m.lock()
	defer m.mu.Unlock()

	list, ok := m.lists[name]
	if !ok {
		return nil, false, nil
	}
	return cloneList(list), true, nil
}

func (l *memoryLists) DeleteList(name string) error {
	m := (*MemoryStore)(l)
	m.lock()
	defer m.mu.Unlock()

	if name == store.DefaultListName {
		return fmt.Errorf("delete list %q: %w", name, store.ErrDefaultListProtected)
	}
	delete(m.lists, name)
	return nil
}

func (l *memoryLists) AddWord(name string, word store.Word) (store.AddResult, error) {
	return l.AddWords(name, []store.Word{word})
}

func (l *memoryLists) AddWords(name string, words []store.Word) (store.AddResult, error) {
	m := (*MemoryStore)(l)
	m.lock()
	defer m.mu.Unlock()

	list, ok := m.lists[name]
	if !ok {
		return store.AddResult{}, fmt.Errorf("add words to %q: %w", name, store.ErrListNotFound)
	}
	merged, res := store.MergeWords(list.Words, words)
	if len(res.Added) > 0 {
		list.Words = merged
		list.UpdatedAt = m.now()
	}
	return res, nil
}

func (l *memoryLists) RemoveWord(name string, wordID int64) (bool, error) {
	m := (*MemoryStore)(l)
	m.lock()
	defer m.mu.Unlock()

	list, ok := m.lists[name]
	if !ok {
		return false, fmt.Errorf("remove word from %q: %w", name, store.ErrListNotFound)
	}
	remaining, removed := store.RemoveWord(list.Words, wordID)
	if removed {
		list.Words = remaining
		list.UpdatedAt = m.now()
	}
	return removed, nil
}

func (l *memoryLists) AllLists() ([]*store.List, error) {
	m := (*MemoryStore)(l)
	m.lock()
	defer m.mu.Unlock()

	lists := make([]*store.List, 0, len(m.lists))
	for _, list := range m.lists {
		lists = append(lists, cloneList(list))
	}
	sort.Slice(lists, func(i, j int) bool {
		if lists[i].IsDefault() != lists[j].IsDefault() {
			return lists[i].IsDefault()
		}
		return lists[i].ID < lists[j].ID
	})
	return lists, nil
}

func (l *memoryLists) AvailableWords(candidates []store.Word) ([]store.Word, error) {
	lists, err := l.AllLists()
	if err != nil {
		return nil, err
	}
	return store.FilterAvailable(candidates, lists), nil
}

// memoryCache implements store.CacheStore. Slice order is insertion order.
type memoryCache MemoryStore

func (c *memoryCache) CacheDailyWords(words []store.Word) error {
	m := (*MemoryStore)(c)
	m.lock()
	defer m.mu.Unlock()

	today := m.today()
	kept := m.cache[:0]
	for _, cw := range m.cache {
		if cw.DateCached == today {
			kept = append(kept, cw)
		}
	}
	m.cache = kept

	now := m.now()
	for _, w := range words {
		entry := store.CachedWord{Word: w, DateCached: today, CreatedAt: now}
		replaced := false
		for i := range m.cache {
			if m.cache[i].Text == w.Text {
				entry.CreatedAt = m.cache[i].CreatedAt
				m.cache[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			m.cache = append(m.cache, entry)
		}
	}
	return nil
}

func (c *memoryCache) CachedDailyWords() ([]store.CachedWord, error) {
	m := (*MemoryStore)(c)
	m.lock()
	defer m.mu.Unlock()

	today := m.today()
	out := []store.CachedWord{}
	for _, cw := range m.cache {
		if cw.DateCached == today {
			out = append(out, cw)
		}
	}
	return out, nil
}

func (c *memoryCache) HasCachedWordsForToday() (bool, error) {
	words, err := c.CachedDailyWords()
	return len(words) > 0, err
}

func (c *memoryCache) ClearCachedWords() error {
	m := (*MemoryStore)(c)
	m.lock()
	defer m.mu.Unlock()

	m.cache = nil
	return nil
}

// memoryMaintenance implements store.Maintenance. In memory no step can
// fail, so every report is all-ok; granularity only changes the report name.
type memoryMaintenance MemoryStore

func (mm *memoryMaintenance) ClearAllData() (*store.Report, error) {
	m := (*MemoryStore)(mm)
	m.lock()
	defer m.mu.Unlock()

	report := &store.Report{Operation: "clear-all-data"}
	m.cache = nil
	m.dropCustomListsLocked()
	report.Record(store.StepClearAllTx, nil)
	m.seedLocked()
	report.Record(store.StepSeedDefaultList, nil)
	return report, nil
}

func (mm *memoryMaintenance) ClearUserData() (*store.Report, error) {
	return mm.clearUserData("clear-user-data")
}

func (mm *memoryMaintenance) ClearUserDataPlatformSafe() (*store.Report, error) {
	return mm.clearUserData("clear-user-data-platform-safe")
}

func (mm *memoryMaintenance) clearUserData(op string) (*store.Report, error) {
	m := (*MemoryStore)(mm)
	m.lock()
	defer m.mu.Unlock()

	report := &store.Report{Operation: op}
	m.cache = nil
	report.Record(store.StepWipeCache, nil)
	m.dropCustomListsLocked()
	report.Record(store.StepWipeCustomLists, nil)
	if def, ok := m.lists[store.DefaultListName]; ok {
		def.Words = []store.Word{}
		def.UpdatedAt = m.now()
	}
	report.Record(store.StepEmptyDefaultList, nil)
	m.seedLocked()
	report.Record(store.StepSeedDefaultList, nil)
	return report, nil
}

func (m *MemoryStore) dropCustomListsLocked() {
	for name := range m.lists {
		if name != store.DefaultListName {
			delete(m.lists, name)
		}
	}
}
