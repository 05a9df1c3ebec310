package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"upkeep/models"
)

// Setting returns the stored value for key, or fallback when absent.
func (e *Engine) Setting(key, fallback string) string {
	var s models.Setting
	if err := e.db.First(&s, "`key` = ?", key).Error; err != nil {
		return fallback
	}
	if s.Value == "" {
		return fallback
	}
	return s.Value
}

// UpsertSetting writes key=value, inserting or overwriting.
func (e *Engine) UpsertSetting(key, value string) error {
	return upsertSetting(e.db, key, value)
}

func upsertSetting(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
}

// RunMarker is the exactly-once-per-civil-day guard used by the sweep jobs.
// It is a best-effort idempotency key, not a lock: the durable watermark
// survives restarts, and a rare duplicate run is harmless because the sweep
// updates are themselves idempotent.
type RunMarker struct {
	db  *gorm.DB
	key string
}

func NewRunMarker(db *gorm.DB, key string) *RunMarker {
	return &RunMarker{db: db, key: key}
}

// HasRunOn reports whether the job already ran on the given civil date.
func (m *RunMarker) HasRunOn(date string) bool {
	var s models.Setting
	if err := m.db.First(&s, "`key` = ?", m.key).Error; err != nil {
		return false
	}
	return s.Value == date
}

// MarkRunOn records date as the last successful run. Call it inside the same
// transaction as the job's writes so no partial state commits without it.
func (m *RunMarker) MarkRunOn(date string) error {
	return upsertSetting(m.db, m.key, date)
}
