package models

import "time"

// TableOpening is one continuous occupancy session of a table. At most one
// open session may exist per table at any time.
//
// ActiveTableID mirrors TableID while the session is open and is set to NULL
// on close. The unique index on it is what serializes concurrent opens at the
// storage layer: NULLs never collide, so closed sessions drop out of the
// constraint while a second open insert for the same table is rejected.
type TableOpening struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	TableID       uint          `gorm:"not null;index" json:"table_id"`
	Table         Table         `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ActiveTableID *uint         `gorm:"uniqueIndex" json:"-"`
	SessionKey    string        `gorm:"type:varchar(64);not null" json:"session_key"`
	Status        OpeningStatus `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	OpenedBy      uint          `gorm:"not null" json:"opened_by"`
	OpenedAt      time.Time     `gorm:"not null" json:"opened_at"`
	ClosedBy      *uint         `json:"closed_by,omitempty"`
	ClosedAt      *time.Time    `json:"closed_at,omitempty"`
}
