package models

import "time"

// Order is framed by exactly one table occupancy session. TotalAmount is
// derived data: it always equals the sum of price*quantity over the current
// items and is rewritten by the lifecycle engine, never accepted as input.
type Order struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	TableID     uint         `gorm:"not null;index" json:"table_id"`
	Table       Table        `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	OpeningID   uint         `gorm:"not null;index" json:"opening_id"`
	Opening     TableOpening `gorm:"foreignKey:OpeningID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedBy   uint         `gorm:"not null" json:"created_by"`
	Status      OrderStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount float64      `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
	Items       []OrderItem  `gorm:"foreignKey:OrderID" json:"items"`
}
