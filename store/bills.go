package store

import (
	"time"

	"restaurant-ops/models"
)

// InsertBill relies on the unique order_id index: a second bill for the same
// order comes back as ErrConflict.
func (s *Store) InsertBill(bill *models.Bill) error {
	return translate(s.db.Create(bill).Error)
}

func (s *Store) GetBill(id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.First(&bill, id).Error; err != nil {
		return nil, translate(err)
	}
	return &bill, nil
}

func (s *Store) GetBillByOrder(orderID uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.db.Where("order_id = ?", orderID).First(&bill).Error; err != nil {
		return nil, translate(err)
	}
	return &bill, nil
}

func (s *Store) ListBills(from, to time.Time) ([]models.Bill, error) {
	query := s.db.Order("created_at asc")
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}

	var bills []models.Bill
	if err := query.Find(&bills).Error; err != nil {
		return nil, translate(err)
	}
	return bills, nil
}
