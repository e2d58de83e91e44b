package memstore

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/yiblet/vocab/internal/store"
)

func w(id int64, text string) store.Word {
	return store.Word{ID: id, Text: text, Definition: "meaning of " + text}
}

func TestMemoryStore_InitializesOnce(t *testing.T) {
	m := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.EnsureReady(); err != nil {
				t.Errorf("EnsureReady() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := m.InitCount(); got != 1 {
		t.Errorf("InitCount = %d, want 1", got)
	}
	if _, found, _ := m.Lists().GetList(store.DefaultListName); !found {
		t.Error("default list should be seeded")
	}
}

func TestMemoryStore_ListRules(t *testing.T) {
	m := NewMemoryStore()
	lists := m.Lists()

	if _, err := lists.CreateList(store.DefaultListName, "", nil); !errors.Is(err, store.ErrNameReserved) {
		t.Errorf("expected ErrNameReserved, got %v", err)
	}
	if _, err := lists.CreateList("X", "", nil); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	if _, err := lists.CreateList("X", "", nil); !errors.Is(err, store.ErrNameExists) {
		t.Errorf("expected ErrNameExists, got %v", err)
	}
	if err := lists.DeleteList(store.DefaultListName); !errors.Is(err, store.ErrDefaultListProtected) {
		t.Errorf("expected ErrDefaultListProtected, got %v", err)
	}
	if err := lists.DeleteList("missing"); err != nil {
		t.Errorf("deleting a missing list should be a no-op, got %v", err)
	}
	if _, err := lists.AddWord("missing", w(1, "apt")); !errors.Is(err, store.ErrListNotFound) {
		t.Errorf("expected ErrListNotFound, got %v", err)
	}
}

func TestMemoryStore_SATScenario(t *testing.T) {
	m := NewMemoryStore()
	lists := m.Lists()

	if _, err := lists.CreateList("SAT", "", nil); err != nil {
		t.Fatalf("CreateList() error = %v", err)
	}
	res, err := lists.AddWords("SAT", []store.Word{w(1, "abate"), w(2, "brusque"), w(2, "brusque")})
	if err != nil {
		t.Fatalf("AddWords() error = %v", err)
	}
	if len(res.Added) != 2 || len(res.Skipped) != 1 {
		t.Errorf("AddWords result = %+v", res)
	}
	if _, err := lists.RemoveWord("SAT", 1); err != nil {
		t.Fatalf("RemoveWord() error = %v", err)
	}
	if removed, err := lists.RemoveWord("SAT", 1); err != nil || removed {
		t.Errorf("second removal = (%v, %v), want (false, nil)", removed, err)
	}

	l, _, _ := lists.GetList("SAT")
	if len(l.Words) != 1 || l.Words[0].ID != 2 {
		t.Errorf("words = %+v, want only id 2", l.Words)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	m := NewMemoryStore()
	l, _ := m.Lists().CreateList("SAT", "", []store.Word{w(1, "apt")})
	l.Words[0].Text = "mutated"

	got, _, _ := m.Lists().GetList("SAT")
	if got.Words[0].Text != "apt" {
		t.Error("mutating a returned list changed stored state")
	}
}

func TestMemoryStore_CacheRetention(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.Local)
	m := NewMemoryStoreWithClock(func() time.Time { return now })
	cache := m.Cache()

	if err := cache.CacheDailyWords([]store.Word{w(1, "apt"), w(2, "brisk")}); err != nil {
		t.Fatalf("CacheDailyWords() error = %v", err)
	}
	if err := cache.CacheDailyWords([]store.Word{{ID: 1, Text: "apt", Definition: "fitting"}}); err != nil {
		t.Fatalf("CacheDailyWords() error = %v", err)
	}
	words, _ := cache.CachedDailyWords()
	if len(words) != 2 || words[0].Definition != "fitting" {
		t.Errorf("upsert by text failed: %+v", words)
	}

	now = now.AddDate(0, 0, 1)
	if has, _ := cache.HasCachedWordsForToday(); has {
		t.Error("yesterday's words should not count")
	}
	if err := cache.CacheDailyWords([]store.Word{w(3, "crux")}); err != nil {
		t.Fatalf("CacheDailyWords() error = %v", err)
	}
	words, _ = cache.CachedDailyWords()
	if len(words) != 1 || words[0].ID != 3 {
		t.Errorf("expected only crux, got %+v", words)
	}

	if err := cache.ClearCachedWords(); err != nil {
		t.Fatalf("ClearCachedWords() error = %v", err)
	}
	if has, _ := cache.HasCachedWordsForToday(); has {
		t.Error("cache should be empty after clear")
	}
}

func TestMemoryStore_Maintenance(t *testing.T) {
	m := NewMemoryStore()
	m.Lists().CreateList("SAT", "", []store.Word{w(1, "apt")})
	m.Lists().AddWord(store.DefaultListName, w(2, "brisk"))
	m.Cache().CacheDailyWords([]store.Word{w(3, "crux")})

	report, err := m.Maintenance().ClearAllData()
	if err != nil || !report.OK() {
		t.Fatalf("ClearAllData() = %v, %v", report, err)
	}
	all, _ := m.Lists().AllLists()
	if len(all) != 1 || len(all[0].Words) != 1 {
		t.Errorf("ClearAllData should keep the default list and its words: %+v", all)
	}

	for _, wipe := range []func() (*store.Report, error){
		m.Maintenance().ClearUserData,
		m.Maintenance().ClearUserDataPlatformSafe,
	} {
		m.Lists().CreateList("GRE", "", nil)
		report, err := wipe()
		if err != nil || !report.OK() {
			t.Fatalf("wipe = %v, %v", report, err)
		}
		all, _ := m.Lists().AllLists()
		if len(all) != 1 || all[0].Name != store.DefaultListName || len(all[0].Words) != 0 {
			t.Errorf("unexpected lists after %s: %+v", report.Operation, all)
		}
	}
}
