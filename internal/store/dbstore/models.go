package dbstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yiblet/vocab/internal/store"
	"gorm.io/datatypes"
)

// DailyWordModel is one row of the daily word cache.
// ID is a surrogate key that records insertion order; WordID is the
// vocabulary record's own identity.
type DailyWordModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	WordID       int64     `gorm:"not null;index"`
	Text         string    `gorm:"not null;uniqueIndex"` // Re-caching the same text replaces the row
	Definition   string    `gorm:"type:text;not null"`
	Example      string    `gorm:"type:text"`
	PartOfSpeech string    `gorm:"size:32"`
	Category     string    `gorm:"size:64"`
	DateCached   string    `gorm:"size:10;not null;index"` // YYYY-MM-DD, local
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for DailyWordModel
func (DailyWordModel) TableName() string {
	return "daily_words"
}

// ToCachedWord converts the GORM model to a store.CachedWord
func (m *DailyWordModel) ToCachedWord() store.CachedWord {
	return store.CachedWord{
		Word: store.Word{
			ID:           m.WordID,
			Text:         m.Text,
			Definition:   m.Definition,
			Example:      m.Example,
			PartOfSpeech: m.PartOfSpeech,
			Category:     m.Category,
		},
		DateCached: m.DateCached,
		CreatedAt:  m.CreatedAt,
	}
}

func newDailyWordModel(w store.Word, date string) *DailyWordModel {
	return &DailyWordModel{
		WordID:       w.ID,
		Text:         w.Text,
		Definition:   w.Definition,
		Example:      w.Example,
		PartOfSpeech: w.PartOfSpeech,
		Category:     w.Category,
		DateCached:   date,
	}
}

// WordListModel is a named list. Its words are serialized into a single
// JSON column rather than a join table.
type WordListModel struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"`
	Name        string         `gorm:"not null;uniqueIndex"`
	Description string         `gorm:"type:text;not null;default:''"`
	Words       datatypes.JSON `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

// TableName returns the table name for WordListModel
func (WordListModel) TableName() string {
	return "word_lists"
}

// decodeWords unmarshals the word blob. An empty blob decodes to an empty
// slice; a corrupt one returns an error wrapping store.ErrSerialization.
func (m *WordListModel) decodeWords() ([]store.Word, error) {
	if len(m.Words) == 0 {
		return []store.Word{}, nil
	}
	var words []store.Word
	if err := json.Unmarshal(m.Words, &words); err != nil {
		return []store.Word{}, fmt.Errorf("%w: list %q: %v", store.ErrSerialization, m.Name, err)
	}
	if words == nil {
		words = []store.Word{}
	}
	return words, nil
}

// toList converts the model; words must already be decoded.
func (m *WordListModel) toList(words []store.Word) *store.List {
	return &store.List{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Words:       words,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// encodeWords serializes words for the blob column. A nil slice encodes as
// an empty array so the column never holds JSON null.
func encodeWords(words []store.Word) (datatypes.JSON, error) {
	if words == nil {
		words = []store.Word{}
	}
	data, err := json.Marshal(words)
	if err != nil {
		return nil, fmt.Errorf("failed to encode words: %w", err)
	}
	return datatypes.JSON(data), nil
}

// MetaItemModel is a key/value row for storage bookkeeping such as the
// applied schema version.
type MetaItemModel struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for MetaItemModel
func (MetaItemModel) TableName() string {
	return "store_meta"
}
