package domain

import "time"

// HistoryEntry records one terminal item outcome. History is a convenience
// record at the application boundary; the download engine itself keeps no
// persistent state beyond the files it writes.
type HistoryEntry struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	BatchID   string     `json:"batch_id" gorm:"index"`
	ItemID    string     `json:"item_id"`
	Provider  string     `json:"provider" gorm:"index"`
	URL       string     `json:"url"`
	Filename  string     `json:"filename,omitempty"`
	Status    ItemStatus `json:"status" gorm:"index"`
	Error     string     `json:"error,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// HistoryRepository defines the interface for download history persistence
type HistoryRepository interface {
	// Create records a terminal outcome
	Create(entry *HistoryEntry) error

	// FindRecent returns the most recent entries, newest first
	FindRecent(limit int) ([]*HistoryEntry, error)

	// FindByBatch returns all entries for one download batch
	FindByBatch(batchID string) ([]*HistoryEntry, error)

	// Count returns the total number of entries
	Count() (int64, error)

	// CountByStatus returns the number of entries with the given status
	CountByStatus(status ItemStatus) (int64, error)
}
