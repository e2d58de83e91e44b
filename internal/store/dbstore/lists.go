package dbstore

import (
	"errors"
	"fmt"

	"github.com/yiblet/vocab/internal/store"
	"gorm.io/gorm"
)

// listRepo implements store.ListStore over the word_lists table
type listRepo struct {
	h *Handle
}

// CreateList inserts a new list after the reservation and uniqueness checks
func (r *listRepo) CreateList(name, description string, words []store.Word) (*store.List, error) {
	db, err := r.h.conn()
	if err != nil {
		return nil, err
	}

	if name == store.DefaultListName {
		return nil, fmt.Errorf("create list %q: %w", name, store.ErrNameReserved)
	}

	var count int64
	if err := db.Model(&WordListModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check list name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("create list %q: %w", name, store.ErrNameExists)
	}

	merged, _ := store.MergeWords(nil, words)
	blob, err := encodeWords(merged)
	if err != nil {
		return nil, err
	}

	model := &WordListModel{
		Name:        name,
		Description: description,
		Words:       blob,
	}
	if err := db.Create(model).Error; err != nil {
		// Lost a race with another creator between the check and the insert.
		if isUniqueConstraintErr(err) {
			return nil, fmt.Errorf("create list %q: %w", name, store.ErrNameExists)
		}
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return model.toList(merged), nil
}

// GetList looks a list up by exact name
func (r *listRepo) GetList(name string) (*store.List, bool, error) {
	db, err := r.h.conn()
	if err != nil {
		return nil, false, err
	}

	model, found, err := findList(db, name)
	if err != nil || !found {
		return nil, false, err
	}
	return model.toList(r.decode(model)), true, nil
}

// DeleteList removes a custom list; a missing name is not an error
func (r *listRepo) DeleteList(name string) error {
	db, err := r.h.conn()
	if err != nil {
		return err
	}

	if name == store.DefaultListName {
		return fmt.Errorf("delete list %q: %w", name, store.ErrDefaultListProtected)
	}

	if err := db.Where("name = ?", name).Delete(&WordListModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// AddWord merges a single word into a list
func (r *listRepo) AddWord(name string, word store.Word) (store.AddResult, error) {
	return r.AddWords(name, []store.Word{word})
}

// AddWords merges words into a list, skipping ids already present.
// This is a read-modify-write of the blob; concurrent writers to the same
// list can overwrite each other.
func (r *listRepo) AddWords(name string, words []store.Word) (store.AddResult, error) {
	db, err := r.h.conn()
	if err != nil {
		return store.AddResult{}, err
	}

	model, found, err := findList(db, name)
	if err != nil {
		return store.AddResult{}, err
	}
	if !found {
		return store.AddResult{}, fmt.Errorf("add words to %q: %w", name, store.ErrListNotFound)
	}

	merged, res := store.MergeWords(r.decode(model), words)
	if len(res.Added) == 0 {
		return res, nil
	}

	if err := r.saveWords(db, model, merged); err != nil {
		return store.AddResult{}, err
	}
	return res, nil
}

// RemoveWord filters a word out of a list by id
func (r *listRepo) RemoveWord(name string, wordID int64) (bool, error) {
	db, err := r.h.conn()
	if err != nil {
		return false, err
	}

	model, found, err := findList(db, name)
	if err != nil {
		return false, err
	}
	if !found {
		return false, fmt.Errorf("remove word from %q: %w", name, store.ErrListNotFound)
	}

	remaining, removed := store.RemoveWord(r.decode(model), wordID)
	if !removed {
		return false, nil
	}

	if err := r.saveWords(db, model, remaining); err != nil {
		return false, err
	}
	return true, nil
}

// AllLists returns every list, default list first, the rest by creation
func (r *listRepo) AllLists() ([]*store.List, error) {
	db, err := r.h.conn()
	if err != nil {
		return nil, err
	}

	var models []*WordListModel
	if err := db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list word lists: %w", err)
	}

	lists := make([]*store.List, 0, len(models))
	for _, m := range models {
		l := m.toList(r.decode(m))
		if l.IsDefault() {
			lists = append([]*store.List{l}, lists...)
			continue
		}
		lists = append(lists, l)
	}
	return lists, nil
}

// AvailableWords drops candidates already saved in any list
func (r *listRepo) AvailableWords(candidates []store.Word) ([]store.Word, error) {
	lists, err := r.AllLists()
	if err != nil {
		return nil, err
	}
	return store.FilterAvailable(candidates, lists), nil
}

// decode returns the list's words, logging and substituting an empty
// collection when the blob is corrupt.
func (r *listRepo) decode(m *WordListModel) []store.Word {
	words, err := m.decodeWords()
	if err != nil {
		r.h.logger.Printf("%v; treating as empty", err)
	}
	return words
}

func (r *listRepo) saveWords(db *gorm.DB, m *WordListModel, words []store.Word) error {
	blob, err := encodeWords(words)
	if err != nil {
		return err
	}
	err = db.Model(&WordListModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{"words": blob, "updated_at": r.h.now()}).Error
	if err != nil {
		return fmt.Errorf("failed to update list %q: %w", m.Name, err)
	}
	return nil
}

func findList(db *gorm.DB, name string) (*WordListModel, bool, error) {
	var model WordListModel
	if err := db.First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get list: %w", err)
	}
	return &model, true, nil
}
