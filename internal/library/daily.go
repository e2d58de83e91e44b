package library

import (
	"github.com/yiblet/vocab/internal/reminder"
	"github.com/yiblet/vocab/internal/store"
)

// CacheDailyWords replaces the daily cache with words for today.
func (l *Library) CacheDailyWords(words []store.Word) error {
	if err := l.store.Cache().CacheDailyWords(words); err != nil {
		return err
	}
	l.reschedule(reminder.ReasonDailyWordsCached)
	return nil
}

// CachedDailyWords returns today's cached words in fetch order.
func (l *Library) CachedDailyWords() ([]store.CachedWord, error) {
	return l.store.Cache().CachedDailyWords()
}

// HasCachedWordsForToday reports whether the remote catalog needs a fetch.
func (l *Library) HasCachedWordsForToday() (bool, error) {
	return l.store.Cache().HasCachedWordsForToday()
}

// ClearCachedWords empties the daily cache.
func (l *Library) ClearCachedWords() error {
	if err := l.store.Cache().ClearCachedWords(); err != nil {
		return err
	}
	l.reschedule(reminder.ReasonDailyWordsCleared)
	return nil
}

// FindCachedWord looks up today's cached word by headword, case-insensitively.
func (l *Library) FindCachedWord(text string) (store.Word, bool, error) {
	cached, err := l.store.Cache().CachedDailyWords()
	if err != nil {
		return store.Word{}, false, err
	}
	key := store.NormalizeText(text)
	for _, cw := range cached {
		if store.NormalizeText(cw.Text) == key {
			return cw.Word, true, nil
		}
	}
	return store.Word{}, false, nil
}

// AvailableDailyWords returns today's words that are not yet in any list.
func (l *Library) AvailableDailyWords() ([]store.Word, error) {
	cached, err := l.store.Cache().CachedDailyWords()
	if err != nil {
		return nil, err
	}
	words := make([]store.Word, len(cached))
	for i, cw := range cached {
		words[i] = cw.Word
	}
	return l.store.Lists().AvailableWords(words)
}

// ClearAllData wipes the cache and custom lists atomically. The default
// list keeps its words.
func (l *Library) ClearAllData() (*store.Report, error) {
	report, err := l.store.Maintenance().ClearAllData()
	l.reschedule(reminder.ReasonDataWiped)
	return report, err
}

// ClearUserData wipes all user state, leaving an empty default list.
// platformSafe selects the one-row-per-statement variant.
func (l *Library) ClearUserData(platformSafe bool) (*store.Report, error) {
	var (
		report *store.Report
		err    error
	)
	if platformSafe {
		report, err = l.store.Maintenance().ClearUserDataPlatformSafe()
	} else {
		report, err = l.store.Maintenance().ClearUserData()
	}
	l.reschedule(reminder.ReasonDataWiped)
	return report, err
}
