package dbstore

import (
	"fmt"

	"github.com/yiblet/vocab/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cacheRepo implements store.CacheStore over the daily_words table
type cacheRepo struct {
	h *Handle
}

// CacheDailyWords evicts rows from any other date, then upserts the words
// by text. Eviction runs first so an interrupted upsert leaves a partial
// cache for today rather than a mix of two days.
func (r *cacheRepo) CacheDailyWords(words []store.Word) error {
	db, err := r.h.conn()
	if err != nil {
		return err
	}

	today := r.h.today()

	// Anything not dated today goes, including future dates left by a
	// skewed clock.
	if err := db.Where("date_cached <> ?", today).Delete(&DailyWordModel{}).Error; err != nil {
		return fmt.Errorf("failed to evict stale words: %w", err)
	}

	for _, w := range words {
		row := newDailyWordModel(w, today)
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "text"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"word_id", "definition", "example", "part_of_speech", "category", "date_cached",
			}),
		}).Create(row).Error
		if err != nil {
			return fmt.Errorf("failed to cache word %q: %w", w.Text, err)
		}
	}
	return nil
}

// CachedDailyWords returns today's rows in insertion order
func (r *cacheRepo) CachedDailyWords() ([]store.CachedWord, error) {
	db, err := r.h.conn()
	if err != nil {
		return nil, err
	}

	var models []*DailyWordModel
	if err := db.Where("date_cached = ?", r.h.today()).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to get cached words: %w", err)
	}

	words := make([]store.CachedWord, len(models))
	for i, m := range models {
		words[i] = m.ToCachedWord()
	}
	return words, nil
}

// HasCachedWordsForToday checks whether a refetch is needed
func (r *cacheRepo) HasCachedWordsForToday() (bool, error) {
	db, err := r.h.conn()
	if err != nil {
		return false, err
	}

	var count int64
	if err := db.Model(&DailyWordModel{}).Where("date_cached = ?", r.h.today()).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count cached words: %w", err)
	}
	return count > 0, nil
}

// ClearCachedWords removes all cached words
func (r *cacheRepo) ClearCachedWords() error {
	db, err := r.h.conn()
	if err != nil {
		return err
	}
	if err := deleteAllCached(db); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func deleteAllCached(db *gorm.DB) error {
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&DailyWordModel{}).Error
}
