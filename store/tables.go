package store

import (
	"restaurant-ops/models"
)

func (s *Store) GetTable(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.db.First(&table, id).Error; err != nil {
		return nil, translate(err)
	}
	return &table, nil
}

func (s *Store) GetTableByNumber(number int) (*models.Table, error) {
	var table models.Table
	if err := s.db.Where("number = ?", number).First(&table).Error; err != nil {
		return nil, translate(err)
	}
	return &table, nil
}

func (s *Store) ListTables() ([]models.Table, error) {
	var tables []models.Table
	if err := s.db.Order("number asc").Find(&tables).Error; err != nil {
		return nil, translate(err)
	}
	return tables, nil
}

func (s *Store) ListTablesByStatus(status models.TableStatus) ([]models.Table, error) {
	var tables []models.Table
	if err := s.db.Where("status = ?", status).Order("number asc").Find(&tables).Error; err != nil {
		return nil, translate(err)
	}
	return tables, nil
}

func (s *Store) InsertTable(table *models.Table) error {
	return translate(s.db.Create(table).Error)
}

// UpdateTableStatus writes only the status column; the occupancy service is
// the sole caller and always re-reads before deciding.
func (s *Store) UpdateTableStatus(id uint, status models.TableStatus) error {
	return translate(s.db.Model(&models.Table{}).Where("id = ?", id).Update("status", status).Error)
}

func (s *Store) CountTablesByStatus(status models.TableStatus) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Table{}).Where("status = ?", status).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
