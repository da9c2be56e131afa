package store

import (
	"restaurant-ops/models"
)

func (s *Store) GetIngredient(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

func (s *Store) ListIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Order("name asc").Find(&ingredients).Error; err != nil {
		return nil, translate(err)
	}
	return ingredients, nil
}

func (s *Store) InsertIngredient(ingredient *models.Ingredient) error {
	return translate(s.db.Create(ingredient).Error)
}

func (s *Store) UpdateIngredient(ingredient *models.Ingredient) error {
	return translate(s.db.Save(ingredient).Error)
}

func (s *Store) ListItemIngredients(menuItemID uint) ([]models.ItemIngredient, error) {
	var links []models.ItemIngredient
	err := s.db.Preload("Ingredient").
		Where("menu_item_id = ?", menuItemID).
		Find(&links).Error
	if err != nil {
		return nil, translate(err)
	}
	return links, nil
}
