package store

import (
	"restaurant-ops/models"
)

func (s *Store) GetMenuItem(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// MenuFilter narrows ListMenuItems; zero values mean "no constraint".
type MenuFilter struct {
	CategoryID    uint
	OnlyAvailable bool
}

func (s *Store) ListMenuItems(filter MenuFilter) ([]models.MenuItem, error) {
	query := s.db.Order("name asc")
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.OnlyAvailable {
		query = query.Where("available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *Store) InsertMenuItem(item *models.MenuItem) error {
	return translate(s.db.Create(item).Error)
}

func (s *Store) UpdateMenuItem(item *models.MenuItem) error {
	return translate(s.db.Save(item).Error)
}

func (s *Store) DeleteMenuItem(id uint) error {
	return translate(s.db.Delete(&models.MenuItem{}, id).Error)
}

func (s *Store) ListCategories() ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

func (s *Store) InsertCategory(category *models.MenuCategory) error {
	return translate(s.db.Create(category).Error)
}
