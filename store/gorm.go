package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the single table behind the persistent store: one row per
// namespaced key, value is the JSON document.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"type:text;column:value"`
}

func (Entry) TableName() string { return "store_entries" }

// Gorm is the database-backed Store implementation.
type Gorm struct {
	db *gorm.DB
}

// NewGorm migrates the store_entries table and returns the store.
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(key string) (string, bool, error) {
	var e Entry
	if err := g.db.First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return e.Value, true, nil
}

func (g *Gorm) Set(key, value string) error {
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Entry{Key: key, Value: value}).Error
}

func (g *Gorm) Remove(key string) error {
	return g.db.Delete(&Entry{}, "key = ?", key).Error
}
