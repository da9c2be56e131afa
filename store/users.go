package store

import (
	"restaurant-ops/models"
)

func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ListUsers(role string, onlyActive bool) ([]models.User, error) {
	query := s.db.Order("name asc")
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *Store) InsertUser(user *models.User) error {
	return translate(s.db.Create(user).Error)
}

func (s *Store) UpdateUser(user *models.User) error {
	return translate(s.db.Save(user).Error)
}
