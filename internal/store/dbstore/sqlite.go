package dbstore

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/yiblet/vocab/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const defaultListDescription = "Words you have learned"

// Opener opens the underlying gorm connection for a database path.
type Opener func(path string, cfg *gorm.Config) (*gorm.DB, error)

func openSQLite(path string, cfg *gorm.Config) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), cfg)
}

// Option configures a Handle.
type Option func(*Handle)

// WithLogger sets the logger used for storage and maintenance messages.
func WithLogger(l *log.Logger) Option {
	return func(h *Handle) { h.logger = l }
}

// WithClock sets the clock that decides which calendar day is "today".
func WithClock(now func() time.Time) Option {
	return func(h *Handle) { h.now = now }
}

// WithSQLLogLevel sets gorm's SQL trace level.
func WithSQLLogLevel(level logger.LogLevel) Option {
	return func(h *Handle) { h.sqlLevel = level }
}

// WithOpener replaces the function used to open the database.
func WithOpener(open Opener) Option {
	return func(h *Handle) { h.open = open }
}

// Handle is the single connection to the SQLite store. It is created cheaply
// and opened lazily by the first operation; schema creation, migrations and
// default-list seeding run exactly once under a mutex.
type Handle struct {
	path     string
	open     Opener
	logger   *log.Logger
	now      func() time.Time
	sqlLevel logger.LogLevel

	mu    sync.Mutex
	db    *gorm.DB
	ready bool
}

var _ store.Store = (*Handle)(nil)

// New creates a handle for the database at dbPath without opening it.
func New(dbPath string, opts ...Option) *Handle {
	h := &Handle{
		path:     dbPath,
		open:     openSQLite,
		logger:   log.New(os.Stderr, "vocab: ", log.LstdFlags),
		now:      time.Now,
		sqlLevel: logger.Silent,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewSQLiteStore creates a handle at dbPath and initializes it immediately.
func NewSQLiteStore(dbPath string, opts ...Option) (*Handle, error) {
	h := New(dbPath, opts...)
	if err := h.EnsureReady(); err != nil {
		return nil, err
	}
	return h, nil
}

// Path returns the database path.
func (h *Handle) Path() string {
	return h.path
}

// EnsureReady opens and initializes the store if that has not happened yet.
// Callers that arrive while initialization is running wait for it. A failed
// initialization leaves the handle unopened so a later call retries.
func (h *Handle) EnsureReady() error {
	_, err := h.conn()
	return err
}

// Lists returns the list repository
func (h *Handle) Lists() store.ListStore {
	return &listRepo{h: h}
}

// Cache returns the daily cache repository
func (h *Handle) Cache() store.CacheStore {
	return &cacheRepo{h: h}
}

// Maintenance returns the wipe routines
func (h *Handle) Maintenance() store.Maintenance {
	return &maintenance{h: h}
}

// Close closes the database connection. A later operation reopens it.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := closeDB(h.db)
	h.db = nil
	h.ready = false
	return err
}

func (h *Handle) conn() (*gorm.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ready {
		return h.db, nil
	}

	db, err := h.initialize()
	if err != nil {
		return nil, err
	}
	h.db = db
	h.ready = true
	return db, nil
}

// initialize runs with h.mu held.
func (h *Handle) initialize() (*gorm.DB, error) {
	db, err := h.open(h.path, &gorm.Config{
		Logger: logger.New(h.logger, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  h.sqlLevel,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
		NowFunc:        h.now,
	})
	if err != nil {
		return nil, &store.StorageError{Op: "open", Err: err}
	}

	fail := func(op string, err error) (*gorm.DB, error) {
		closeDB(db)
		return nil, &store.StorageError{Op: op, Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fail("open", err)
	}
	// One connection: SQLite has a single writer, and ":memory:" databases
	// are per connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		return fail("configure", err)
	}

	// Cache table first, then lists, then bookkeeping.
	if err := db.AutoMigrate(&DailyWordModel{}, &WordListModel{}, &MetaItemModel{}); err != nil {
		return fail("migrate schema", err)
	}

	if err := runMigrations(db, h.logger); err != nil {
		return fail("migrate data", err)
	}

	if err := seedDefaultList(db); err != nil {
		return fail("seed default list", err)
	}

	h.logger.Printf("storage ready at %s", h.path)
	return db, nil
}

func (h *Handle) today() string {
	return store.DateOf(h.now())
}

// seedDefaultList inserts the default list unless it already exists.
func seedDefaultList(db *gorm.DB) error {
	words, err := encodeWords(nil)
	if err != nil {
		return err
	}
	row := &WordListModel{
		Name:        store.DefaultListName,
		Description: defaultListDescription,
		Words:       words,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("failed to seed %q list: %w", store.DefaultListName, err)
	}
	return nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isUniqueConstraintErr returns true when the error indicates a unique/constraint violation
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique constraint")
}
