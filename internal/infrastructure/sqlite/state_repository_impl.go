package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/oksasatya/go-portfolio-builder/internal/domain/repository"
)

type StateSlot struct {
	Key       string `gorm:"column:slot_key;primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (StateSlot) TableName() string { return "app_state_slots" }

// Open opens the database file at path and migrates the slot table.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&StateSlot{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

type StateRepository struct {
	db *gorm.DB
	ns string
}

func NewStateRepository(db *gorm.DB, namespace string) *StateRepository {
	return &StateRepository{db: db, ns: namespace}
}

func (r *StateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var slot StateSlot
	err := r.db.WithContext(ctx).First(&slot, "slot_key = ?", r.ns+key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %s: %w", key, err)
	}
	return slot.Value, nil
}

func (r *StateRepository) Put(ctx context.Context, key string, value []byte) error {
	slot := StateSlot{Key: r.ns + key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}

func (r *StateRepository) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Delete(&StateSlot{}, "slot_key = ?", r.ns+key).Error; err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

func (r *StateRepository) Clear(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Where("substr(slot_key, 1, ?) = ?", utf8.RuneCountInString(r.ns), r.ns).
		Delete(&StateSlot{}).Error
	if err != nil {
		return fmt.Errorf("clear namespace: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

