// Package store defines the storage interfaces for vocab's persistence layer.
// It covers the two record kinds the app keeps locally: named word lists
// (including the protected default list) and the date-scoped cache of
// daily words, plus the maintenance routines that wipe both.
package store

// ListStore manages word lists. Every method initializes the underlying
// storage on first use.
type ListStore interface {
	// CreateList stores a new list. It fails with ErrNameReserved for the
	// default list name and with ErrNameExists when the name is taken.
	// words may be nil; duplicate ids in words are collapsed.
	CreateList(name, description string, words []Word) (*List, error)

	// GetList returns the list with the exact name. A missing list is
	// reported through the bool, not an error.
	GetList(name string) (*List, bool, error)

	// DeleteList removes a list by name. Deleting the default list fails with
	// ErrDefaultListProtected; deleting a missing list is a no-op.
	DeleteList(name string) error

	// AddWord merges a single word into the named list.
	AddWord(name string, word Word) (AddResult, error)

	// AddWords merges words into the named list, skipping any whose id is
	// already present. Fails with ErrListNotFound for a missing list.
	// Concurrent writers to the same list race; the last write wins.
	AddWords(name string, words []Word) (AddResult, error)

	// RemoveWord drops the word with the given id from the named list and
	// reports whether it was present. Fails with ErrListNotFound for a
	// missing list.
	RemoveWord(name string, wordID int64) (bool, error)

	// AllLists returns every list with its words decoded.
	AllLists() ([]*List, error)

	// AvailableWords filters candidates down to those whose text does not
	// appear (case-insensitively) in any list.
	AvailableWords(candidates []Word) ([]Word, error)
}

// CacheStore manages the daily word cache. At most one calendar date's
// worth of words is retained.
type CacheStore interface {
	// CacheDailyWords evicts every row not dated today and then upserts the
	// given words by text, stamped with today's date.
	CacheDailyWords(words []Word) error

	// CachedDailyWords returns today's words in insertion order.
	CachedDailyWords() ([]CachedWord, error)

	// HasCachedWordsForToday reports whether any word is cached for today.
	HasCachedWordsForToday() (bool, error)

	// ClearCachedWords removes every cached word regardless of date.
	ClearCachedWords() error
}

// Maintenance wipes persisted state while keeping the default list alive.
// Each routine is idempotent. Individual step failures are recorded in the
// returned Report; an error is returned only when the default list could not
// be restored.
type Maintenance interface {
	// ClearAllData deletes every cached word and every non-default list in a
	// single transaction.
	ClearAllData() (*Report, error)

	// ClearUserData wipes the cache and custom lists and empties the default
	// list, one independently guarded statement per step.
	ClearUserData() (*Report, error)

	// ClearUserDataPlatformSafe runs the same wipe one row per statement.
	ClearUserDataPlatformSafe() (*Report, error)
}

// Store combines the repositories over one storage handle.
type Store interface {
	// EnsureReady initializes the storage if needed. It is safe to call
	// concurrently and repeatedly.
	EnsureReady() error

	// Lists returns the list repository.
	Lists() ListStore

	// Cache returns the daily cache repository.
	Cache() CacheStore

	// Maintenance returns the wipe routines.
	Maintenance() Maintenance

	// Close releases all resources.
	Close() error
}
