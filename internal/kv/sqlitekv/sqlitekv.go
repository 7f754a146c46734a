// Package sqlitekv keeps the key-value namespace in one SQLite table through GORM.
package sqlitekv

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"playboard/internal/kv"
)

// Entry is one stored document.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     datatypes.JSON
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of GORM naming strategy.
func (Entry) TableName() string {
	return "kv_entries"
}

// Store is a kv.Store backed by SQLite.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates the schema. An empty path opens a private
// in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: %w", err)
	}
	// One connection so an in-memory database is not split across the pool.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Entry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlitekv: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the document stored under key, or kv.ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	var e Entry
	err := s.db.Where("key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: get %q: %w", key, err)
	}
	return []byte(e.Value), nil
}

// Set upserts value under key.
func (s *Store) Set(key string, value []byte) error {
	e := Entry{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("sqlitekv: set %q: %w", key, err)
	}
	return nil
}

// Delete removes key, or returns kv.ErrNotFound.
func (s *Store) Delete(key string) error {
	res := s.db.Where("key = ?", key).Delete(&Entry{})
	if res.Error != nil {
		return fmt.Errorf("sqlitekv: delete %q: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return kv.ErrNotFound
	}
	return nil
}

// Keys lists the stored keys in ascending order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	if err := s.db.Model(&Entry{}).Order("key").Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("sqlitekv: list: %w", err)
	}
	return keys, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ kv.Store = (*Store)(nil)
