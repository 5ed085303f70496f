// Package postgres stores key-value pairs in a PostgreSQL table through gorm.
package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvEntry struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     string `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

type kvStore struct {
	db *gorm.DB
}

// NewKVStore wraps an opened gorm handle.
func NewKVStore(db *gorm.DB) repository.KeyValueStore {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry kvEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "get %s", key)
	}

	return entry.Value, true, nil
}

func (s *kvStore) Set(ctx context.Context, key, value string) error {
	entry := kvEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error

	return errors.Wrapf(err, "set %s", key)
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&kvEntry{}).Error

	return errors.Wrapf(err, "delete %s", key)
}
