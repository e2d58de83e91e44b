package library

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yiblet/vocab/internal/notice"
	"github.com/yiblet/vocab/internal/reminder"
	"github.com/yiblet/vocab/internal/store"
)

// Library is the entry point UI code uses for lists and the daily cache.
// It wraps a store with user notices for every list mutation and tells the
// reminder scheduler when cache or list state changes.
type Library struct {
	store   store.Store
	notices notice.Sink
	trigger reminder.Trigger

	pending sync.WaitGroup
}

// Option configures a Library.
type Option func(*Library)

// WithNotices sets the sink that receives user notices.
func WithNotices(s notice.Sink) Option {
	return func(l *Library) { l.notices = s }
}

// WithTrigger sets the reminder trigger.
func WithTrigger(t reminder.Trigger) Option {
	return func(l *Library) { l.trigger = t }
}

// New creates a library over s. Notices and triggers default to no-ops.
func New(s store.Store, opts ...Option) *Library {
	l := &Library{
		store:   s,
		notices: notice.Discard,
		trigger: reminder.Nop,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Store returns the underlying store.
func (l *Library) Store() store.Store {
	return l.store
}

// Wait blocks until every dispatched reminder trigger has returned.
func (l *Library) Wait() {
	l.pending.Wait()
}

// reschedule fires the trigger without waiting for it.
func (l *Library) reschedule(reason string) {
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()
		l.trigger.Reschedule(reason)
	}()
}

// fail emits the notice for err and returns it unchanged.
func (l *Library) fail(err error, name, action string) error {
	var msg string
	switch {
	case errors.Is(err, store.ErrNameReserved):
		msg = fmt.Sprintf("%q is reserved for the system list", name)
	case errors.Is(err, store.ErrNameExists):
		msg = fmt.Sprintf("A list named %q already exists", name)
	case errors.Is(err, store.ErrDefaultListProtected):
		msg = fmt.Sprintf("The %q list cannot be deleted", name)
	case errors.Is(err, store.ErrListNotFound):
		msg = fmt.Sprintf("List %q does not exist", name)
	default:
		msg = fmt.Sprintf("Could not %s: %v", action, err)
	}
	l.notices.Notify(msg, notice.Error)
	return err
}

// CreateList creates a list and reports the outcome as a notice.
func (l *Library) CreateList(name, description string, words []store.Word) (*store.List, error) {
	list, err := l.store.Lists().CreateList(name, description, words)
	if err != nil {
		return nil, l.fail(err, name, "create list")
	}
	l.notices.Notify(fmt.Sprintf("Created list %q", name), notice.Success)
	l.reschedule(reminder.ReasonListChanged)
	return list, nil
}

// GetList looks a list up by name.
func (l *Library) GetList(name string) (*store.List, bool, error) {
	return l.store.Lists().GetList(name)
}

// AllLists returns every list, default list first.
func (l *Library) AllLists() ([]*store.List, error) {
	return l.store.Lists().AllLists()
}

// DeleteList deletes a custom list.
func (l *Library) DeleteList(name string) error {
	if err := l.store.Lists().DeleteList(name); err != nil {
		return l.fail(err, name, "delete list")
	}
	l.notices.Notify(fmt.Sprintf("Deleted list %q", name), notice.Success)
	l.reschedule(reminder.ReasonListChanged)
	return nil
}

// AddWord adds one word to a list.
func (l *Library) AddWord(name string, word store.Word) (store.AddResult, error) {
	return l.AddWords(name, []store.Word{word})
}

// AddWords adds words to a list and reports how many were new.
func (l *Library) AddWords(name string, words []store.Word) (store.AddResult, error) {
	res, err := l.store.Lists().AddWords(name, words)
	if err != nil {
		return res, l.fail(err, name, "add words")
	}

	switch {
	case len(res.Added) == 0 && len(res.Skipped) == 1:
		l.notices.Notify(fmt.Sprintf("%q is already in %s", res.Skipped[0].Text, name), notice.Info)
	case len(res.Added) == 0:
		l.notices.Notify(fmt.Sprintf("All %d words are already in %s", len(res.Skipped), name), notice.Info)
	case len(res.Added) == 1 && len(res.Skipped) == 0:
		l.notices.Notify(fmt.Sprintf("Added %q to %s", res.Added[0].Text, name), notice.Success)
	case len(res.Skipped) == 0:
		l.notices.Notify(fmt.Sprintf("Added %d words to %s", len(res.Added), name), notice.Success)
	default:
		l.notices.Notify(fmt.Sprintf("Added %d words to %s (%d already present)",
			len(res.Added), name, len(res.Skipped)), notice.Success)
	}

	if len(res.Added) > 0 {
		l.reschedule(reminder.ReasonListChanged)
	}
	return res, nil
}

// RemoveWord removes a word from a list by id.
func (l *Library) RemoveWord(name string, wordID int64) (bool, error) {
	removed, err := l.store.Lists().RemoveWord(name, wordID)
	if err != nil {
		return false, l.fail(err, name, "remove word")
	}
	if !removed {
		l.notices.Notify(fmt.Sprintf("Word %d is not in %s", wordID, name), notice.Info)
		return false, nil
	}
	l.notices.Notify(fmt.Sprintf("Removed word %d from %s", wordID, name), notice.Success)
	l.reschedule(reminder.ReasonListChanged)
	return true, nil
}

// RemoveWordByText removes the word whose headword matches text
// (case-insensitively) from a list.
func (l *Library) RemoveWordByText(name, text string) (bool, error) {
	list, found, err := l.store.Lists().GetList(name)
	if err != nil {
		return false, l.fail(err, name, "remove word")
	}
	if !found {
		return false, l.fail(fmt.Errorf("remove word from %q: %w", name, store.ErrListNotFound), name, "remove word")
	}

	key := store.NormalizeText(text)
	for _, w := range list.Words {
		if store.NormalizeText(w.Text) == key {
			return l.RemoveWord(name, w.ID)
		}
	}
	l.notices.Notify(fmt.Sprintf("%q is not in %s", text, name), notice.Info)
	return false, nil
}

// AvailableWords filters candidates down to words not saved in any list.
func (l *Library) AvailableWords(candidates []store.Word) ([]store.Word, error) {
	return l.store.Lists().AvailableWords(candidates)
}
