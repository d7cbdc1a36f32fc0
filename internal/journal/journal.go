package journal

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bazaar/internal/models"
)

// Entry is one successfully submitted order as recorded on this device. The
// journal is a local convenience view, not a sync mechanism: the order
// service remains the source of truth.
type Entry struct {
	ID            uint    `gorm:"primaryKey"`
	OrderID       string  `gorm:"uniqueIndex;type:varchar(36)"`
	TotalAmount   float64 `gorm:"not null"`
	PaymentMethod string  `gorm:"type:varchar(20)"`
	ItemCount     int
	PlacedAt      time.Time
}

// Journal persists submitted orders in a local SQLite database.
type Journal struct {
	db *gorm.DB
}

// Open opens (creating if needed) the journal database at path. Use
// "file::memory:?cache=shared" for an in-memory journal in tests.
func Open(path string) (*Journal, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record stores a summary of the submitted order.
func (j *Journal) Record(order models.OrderRequest) error {
	entry := Entry{
		OrderID:       order.OrderID,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
		PlacedAt:      time.Now(),
	}
	if err := j.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record order %s: %w", order.OrderID, err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (j *Journal) Recent(n int) ([]Entry, error) {
	var entries []Entry
	err := j.db.Order("placed_at desc").Limit(n).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return entries, nil
}
