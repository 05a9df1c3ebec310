package models

import "time"

// Reference entities. Their CRUD lives elsewhere; the engine only needs them
// for foreign keys and display-name enrichment, and their deletion nullifies
// task references rather than cascading.

type Employee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Email     string    `gorm:"size:128" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type System struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Building struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type Location struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `json:"name"`
	BuildingID *uint     `json:"building_id"`
	Building   *Building `gorm:"constraint:OnDelete:SET NULL" json:"building,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// All lists every model AutoMigrate needs, referenced entities first so
// foreign keys resolve.
func All() []any {
	return []any{
		&Employee{}, &System{}, &Building{}, &Location{},
		&Task{}, &TaskEvent{}, &TaskConfirmation{}, &Setting{},
	}
}
