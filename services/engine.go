// Package services implements the task lifecycle and scheduling engine:
// status transitions, recurrence materialization, timing classification,
// the end-of-workday auto-close sweep and the confirmation token protocol.
package services

import (
	"time"

	"gorm.io/gorm"

	"upkeep/clock"
	"upkeep/notify"
)

type Engine struct {
	db    *gorm.DB
	sink  notify.Sink
	civil *clock.Civil

	// now is swapped out by tests; everything time-sensitive reads it.
	now func() time.Time
}

func NewEngine(db *gorm.DB, sink notify.Sink, civil *clock.Civil) *Engine {
	return &Engine{
		db:    db,
		sink:  sink,
		civil: civil,
		now:   time.Now,
	}
}

func (e *Engine) DB() *gorm.DB {
	return e.db
}
