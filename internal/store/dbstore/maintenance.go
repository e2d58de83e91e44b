package dbstore

import (
	"errors"
	"fmt"

	"github.com/yiblet/vocab/internal/store"
	"gorm.io/gorm"
)

// maintenance implements store.Maintenance. Every routine ends by seeding
// the default list, whatever happened in the earlier steps.
type maintenance struct {
	h *Handle
}

// ClearAllData deletes the cache and every custom list in one transaction
func (m *maintenance) ClearAllData() (*store.Report, error) {
	report := &store.Report{Operation: "clear-all-data"}

	db, err := m.h.conn()
	if err != nil {
		return report, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := deleteAllCached(tx); err != nil {
			return fmt.Errorf("wipe cache: %w", err)
		}
		if err := deleteCustomLists(tx); err != nil {
			return fmt.Errorf("wipe lists: %w", err)
		}
		return nil
	})
	m.record(report, store.StepClearAllTx, err)

	return report, m.repairDefaultList(db, report)
}

// ClearUserData wipes user state one guarded statement per step
func (m *maintenance) ClearUserData() (*store.Report, error) {
	return m.clearUserData("clear-user-data", store.GranularityBatched)
}

// ClearUserDataPlatformSafe wipes user state one row per statement
func (m *maintenance) ClearUserDataPlatformSafe() (*store.Report, error) {
	return m.clearUserData("clear-user-data-platform-safe", store.GranularityPerRow)
}

func (m *maintenance) clearUserData(op string, g store.Granularity) (*store.Report, error) {
	report := &store.Report{Operation: op}

	db, err := m.h.conn()
	if err != nil {
		return report, err
	}

	switch g {
	case store.GranularityPerRow:
		m.record(report, store.StepWipeCache, deleteRowsOneByOne(db, &DailyWordModel{}, db.Model(&DailyWordModel{})))
		m.record(report, store.StepWipeCustomLists, deleteRowsOneByOne(db, &WordListModel{},
			db.Model(&WordListModel{}).Where("name <> ?", store.DefaultListName)))
	default:
		m.record(report, store.StepWipeCache, deleteAllCached(db))
		m.record(report, store.StepWipeCustomLists, deleteCustomLists(db))
	}
	m.record(report, store.StepEmptyDefaultList, m.emptyDefaultList(db))

	return report, m.repairDefaultList(db, report)
}

// repairDefaultList is the final step of every routine; its failure is the
// only one returned to the caller.
func (m *maintenance) repairDefaultList(db *gorm.DB, report *store.Report) error {
	err := seedDefaultList(db)
	m.record(report, store.StepSeedDefaultList, err)
	if err != nil {
		return fmt.Errorf("%s: failed to restore default list: %w", report.Operation, err)
	}
	return nil
}

func (m *maintenance) emptyDefaultList(db *gorm.DB) error {
	blob, err := encodeWords(nil)
	if err != nil {
		return err
	}
	return db.Model(&WordListModel{}).
		Where("name = ?", store.DefaultListName).
		Updates(map[string]interface{}{"words": blob, "updated_at": m.h.now()}).Error
}

func (m *maintenance) record(report *store.Report, step string, err error) {
	if err != nil {
		m.h.logger.Printf("%s: step %s failed: %v", report.Operation, step, err)
	}
	report.Record(step, err)
}

func deleteCustomLists(db *gorm.DB) error {
	return db.Where("name <> ?", store.DefaultListName).Delete(&WordListModel{}).Error
}

// deleteRowsOneByOne plucks the ids matched by query and deletes each row
// with its own statement. Every row is attempted; the failures are joined.
func deleteRowsOneByOne(db *gorm.DB, model interface{}, query *gorm.DB) error {
	var ids []uint
	if err := query.Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to select rows: %w", err)
	}

	var errs []error
	for _, id := range ids {
		if err := db.Delete(model, id).Error; err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
