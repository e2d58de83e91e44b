package dbstore

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/yiblet/vocab/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const schemaVersionKey = "schema_version"

// migration is a forward-only data step applied after AutoMigrate.
type migration struct {
	version int
	name    string
	up      func(tx *gorm.DB) error
}

// migrations must stay ordered by version. Every step has to be harmless on
// a database where its target state already holds.
var migrations = []migration{
	{
		version: 1,
		name:    "remove deprecated Favorites list",
		up: func(tx *gorm.DB) error {
			return tx.Where("name = ?", store.DeprecatedListName).Delete(&WordListModel{}).Error
		},
	},
}

// latestSchemaVersion is the version a fully migrated database reports.
func latestSchemaVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].version
}

// runMigrations applies every migration newer than the recorded version,
// each in its own transaction together with the version bump.
func runMigrations(db *gorm.DB, l *log.Logger) error {
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.up(tx); err != nil {
				return err
			}
			return setSchemaVersion(tx, m.version)
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		l.Printf("applied migration %d: %s", m.version, m.name)
	}
	return nil
}

// schemaVersion returns the recorded version, 0 for a fresh database.
func schemaVersion(db *gorm.DB) (int, error) {
	var item MetaItemModel
	if err := db.First(&item, "key = ?", schemaVersionKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	v, err := strconv.Atoi(item.Value)
	if err != nil {
		return 0, fmt.Errorf("invalid schema version %q: %w", item.Value, err)
	}
	return v, nil
}

func setSchemaVersion(db *gorm.DB, version int) error {
	item := &MetaItemModel{Key: schemaVersionKey, Value: strconv.Itoa(version)}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}
