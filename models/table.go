package models

import "time"

type Table struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Number    int         `gorm:"uniqueIndex;not null" json:"number"`
	Status    TableStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}
