package store

import (
	"strings"
	"time"
)

const (
	// DefaultListName is the reserved system list. It exists at all times
	// after initialization and can be emptied but never deleted.
	DefaultListName = "Learned"

	// DeprecatedListName is a list name removed by a forward migration.
	DeprecatedListName = "Favorites"

	// DateLayout is the calendar-date format used to tag cached words.
	DateLayout = "2006-01-02"
)

// Word is an immutable vocabulary record. ID is the stable identity used
// for de-duplication inside a list and in the daily cache.
type Word struct {
	ID           int64  `json:"id" yaml:"id"`
	Text         string `json:"text" yaml:"text"`
	Definition   string `json:"definition" yaml:"definition"`
	Example      string `json:"example,omitempty" yaml:"example,omitempty"`
	PartOfSpeech string `json:"partOfSpeech,omitempty" yaml:"partOfSpeech,omitempty"`
	Category     string `json:"category,omitempty" yaml:"category,omitempty"`
}

// List is a named collection of words. Words are kept in insertion order,
// which is also the display order.
type List struct {
	ID          uint
	Name        string
	Description string
	Words       []Word
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsDefault reports whether l is the reserved default list.
func (l *List) IsDefault() bool {
	return l.Name == DefaultListName
}

// Contains reports whether a word with the given id is in the list.
func (l *List) Contains(id int64) bool {
	for _, w := range l.Words {
		if w.ID == id {
			return true
		}
	}
	return false
}

// CachedWord is a word in the daily cache together with the calendar date
// it was fetched for.
type CachedWord struct {
	Word

	// DateCached is the local calendar date in DateLayout form.
	DateCached string

	CreatedAt time.Time
}

// AddResult reports the outcome of merging words into a list.
type AddResult struct {
	// Added holds the words appended to the list, in order.
	Added []Word

	// Skipped holds words whose id was already present, either in the
	// list or earlier in the same input.
	Skipped []Word
}

// DateOf returns the local calendar date of t in DateLayout form.
func DateOf(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// MergeWords appends every word from incoming whose id is not yet in
// existing (or earlier in incoming) and returns the merged slice plus the
// split between added and skipped words. existing is not modified.
func MergeWords(existing, incoming []Word) ([]Word, AddResult) {
	seen := make(map[int64]struct{}, len(existing)+len(incoming))
	merged := make([]Word, 0, len(existing)+len(incoming))
	for _, w := range existing {
		seen[w.ID] = struct{}{}
		merged = append(merged, w)
	}

	var res AddResult
	for _, w := range incoming {
		if _, ok := seen[w.ID]; ok {
			res.Skipped = append(res.Skipped, w)
			continue
		}
		seen[w.ID] = struct{}{}
		merged = append(merged, w)
		res.Added = append(res.Added, w)
	}
	return merged, res
}

// RemoveWord returns words without the entry whose id matches, and whether
// anything was removed.
func RemoveWord(words []Word, id int64) ([]Word, bool) {
	out := make([]Word, 0, len(words))
	removed := false
	for _, w := range words {
		if w.ID == id {
			removed = true
			continue
		}
		out = append(out, w)
	}
	return out, removed
}

// NormalizeText folds a headword for cross-list availability matching.
func NormalizeText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// FilterAvailable drops every candidate whose normalized text appears in
// any of the given lists. Candidate order is preserved.
func FilterAvailable(candidates []Word, lists []*List) []Word {
	taken := make(map[string]struct{})
	for _, l := range lists {
		for _, w := range l.Words {
			taken[NormalizeText(w.Text)] = struct{}{}
		}
	}

	out := make([]Word, 0, len(candidates))
	for _, w := range candidates {
		if _, ok := taken[NormalizeText(w.Text)]; ok {
			continue
		}
		out = append(out, w)
	}
	return out
}
