package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Record is a single collection blob persisted by the GORM-backed store.
type Record struct {
	Key   string         `gorm:"primaryKey;size:128"`
	Value datatypes.JSON `gorm:"not null"`
}

// TableName keeps the storage table explicit.
func (Record) TableName() string { return "kv_records" }

// Gorm persists collection blobs in a single key/value table.
type Gorm struct {
	db *gorm.DB
}

// ConnectPostgres opens the production database and prepares the blob table.
func ConnectPostgres(url string) (*Gorm, error) {
	if url == "" {
		return nil, fmt.Errorf("database url must not be empty")
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return newGorm(db)
}

// ConnectSQLite opens a SQLite-backed store, used by tests and local runs.
func ConnectSQLite(path string) (*Gorm, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}

	return newGorm(db)
}

func newGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv table: %w", err)
	}

	return &Gorm{db: db}, nil
}

// Load implements Store.
func (g *Gorm) Load(ctx context.Context, key string, dest interface{}) error {
	var record Record
	if err := g.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrKeyNotFound
		}
		return err
	}

	return json.Unmarshal(record.Value, dest)
}

// Save implements Store.
func (g *Gorm) Save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", key, err)
	}

	record := Record{Key: key, Value: payload}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&record).Error
}
