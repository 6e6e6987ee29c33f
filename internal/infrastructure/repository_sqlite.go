package infrastructure

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LeSteak11/social-media-downloader/internal/domain"
)

// SQLiteHistoryRepository implements domain.HistoryRepository using SQLite
type SQLiteHistoryRepository struct {
	db *gorm.DB
}

// NewSQLiteHistoryRepository creates a new SQLite history repository
func NewSQLiteHistoryRepository(dbPath string) (*SQLiteHistoryRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.HistoryEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteHistoryRepository{db: db}, nil
}

// Create records a terminal outcome
func (r *SQLiteHistoryRepository) Create(entry *domain.HistoryEntry) error {
	return r.db.Create(entry).Error
}

// FindRecent returns the most recent entries, newest first
func (r *SQLiteHistoryRepository) FindRecent(limit int) ([]*domain.HistoryEntry, error) {
	var entries []*domain.HistoryEntry
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// FindByBatch returns all entries for one download batch
func (r *SQLiteHistoryRepository) FindByBatch(batchID string) ([]*domain.HistoryEntry, error) {
	var entries []*domain.HistoryEntry
	err := r.db.Where("batch_id = ?", batchID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

// Count returns the total number of entries
func (r *SQLiteHistoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.HistoryEntry{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of entries with the given status
func (r *SQLiteHistoryRepository) CountByStatus(status domain.ItemStatus) (int64, error) {
	var count int64
	err := r.db.Model(&domain.HistoryEntry{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
