package store

import (
	"restaurant-ops/models"
)

func (s *Store) ListOrderItems(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.db.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *Store) GetOrderItemByID(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *Store) GetOrderItem(orderID, menuItemID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := s.db.Where("order_id = ? AND menu_item_id = ?", orderID, menuItemID).
		First(&item).Error
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *Store) InsertOrderItem(item *models.OrderItem) error {
	return translate(s.db.Create(item).Error)
}

func (s *Store) UpdateOrderItem(item *models.OrderItem) error {
	return translate(s.db.Save(item).Error)
}

func (s *Store) UpdateOrderItemStatus(itemID uint, status models.OrderStatus) error {
	return translate(s.db.Model(&models.OrderItem{}).Where("id = ?", itemID).Update("status", status).Error)
}

// DeleteOrderItem removes the matching item. Deleting an item that is not
// there is not an error; remove is idempotent.
func (s *Store) DeleteOrderItem(orderID, menuItemID uint) error {
	err := s.db.Where("order_id = ? AND menu_item_id = ?", orderID, menuItemID).
		Delete(&models.OrderItem{}).Error
	return translate(err)
}

// ListOrderItemsByStatus feeds the kitchen queue, oldest first.
func (s *Store) ListOrderItemsByStatus(status models.OrderStatus) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.Preload("MenuItem").
		Where("status = ?", status).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}
