package models

import "time"

// Setting is one row of the flat key/value configuration table. The sweep
// jobs use it for workday times and their daily run watermarks.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"size:255" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
