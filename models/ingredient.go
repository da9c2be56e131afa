package models

import "time"

type Ingredient struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);unique;not null" json:"name"`
	Quantity    float64   `gorm:"not null;default:0" json:"quantity"`
	MinQuantity float64   `gorm:"not null;default:0" json:"min_quantity"`
	Unit        string    `gorm:"type:varchar(50);not null" json:"unit"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemIngredient maps a menu item to the ingredients one serving consumes.
type ItemIngredient struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	MenuItemID   uint       `gorm:"not null;uniqueIndex:idx_item_ingredient" json:"menu_item_id"`
	MenuItem     MenuItem   `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_item_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"ingredient"`
	Quantity     float64    `gorm:"not null" json:"quantity"`
}
