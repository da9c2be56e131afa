package models

import "time"

// Bill is created exactly once per order; the unique index on OrderID
// enforces that in storage. TotalAmount is a snapshot of the order total at
// billing time and is immutable afterwards.
type Bill struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	Order         Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Reference     string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"reference"`
	TotalAmount   float64   `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentMethod string    `gorm:"type:varchar(20);not null" json:"payment_method"`
	CreatedBy     uint      `gorm:"not null" json:"created_by"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
