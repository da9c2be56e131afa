package store

import (
	"time"

	"restaurant-ops/models"
)

func (s *Store) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *Store) GetOrderWithItems(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("Items.MenuItem").First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// OrderFilter narrows ListOrders; zero values mean "no constraint".
type OrderFilter struct {
	TableID uint
	Status  models.OrderStatus
	From    time.Time
	To      time.Time
}

func (s *Store) ListOrders(filter OrderFilter) ([]models.Order, error) {
	query := s.db.Preload("Items").Preload("Items.MenuItem").Order("created_at asc")
	if filter.TableID != 0 {
		query = query.Where("table_id = ?", filter.TableID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at <= ?", filter.To)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

func (s *Store) ListOrdersByStatuses(statuses []models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").
		Where("status IN ?", statuses).
		Order("created_at asc").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

func (s *Store) InsertOrder(order *models.Order) error {
	return translate(s.db.Create(order).Error)
}

func (s *Store) UpdateOrderStatus(id uint, status models.OrderStatus) error {
	return translate(s.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error)
}

func (s *Store) UpdateOrderTotal(id uint, total float64) error {
	return translate(s.db.Model(&models.Order{}).Where("id = ?", id).Update("total_amount", total).Error)
}
