package services

import (
	"fmt"

	"restaurant-ops/store"
)

// Catalog is the menu price lookup collaborator. Prices are read exactly
// once, at the moment an item is added to an order, and captured on the
// order item; they are never re-read afterwards.
type Catalog interface {
	GetPrice(menuItemID uint) (float64, error)
}

// StoreCatalog serves prices straight from the menu rows. Items flagged
// unavailable are treated as absent from the catalog.
type StoreCatalog struct {
	store *store.Store
}

func NewStoreCatalog(st *store.Store) *StoreCatalog {
	return &StoreCatalog{store: st}
}

func (c *StoreCatalog) GetPrice(menuItemID uint) (float64, error) {
	item, err := c.store.GetMenuItem(menuItemID)
	if err != nil {
		return 0, fmt.Errorf("menu item %d: %w", menuItemID, err)
	}
	if !item.Available {
		return 0, fmt.Errorf("menu item %d not on the menu: %w", menuItemID, store.ErrNotFound)
	}
	return item.Price, nil
}
