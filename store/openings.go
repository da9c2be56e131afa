package store

import (
	"restaurant-ops/models"
)

func (s *Store) GetOpening(id uint) (*models.TableOpening, error) {
	var opening models.TableOpening
	if err := s.db.First(&opening, id).Error; err != nil {
		return nil, translate(err)
	}
	return &opening, nil
}

// GetOpenOpening returns the live session for a table, if any. The unique
// index on active_table_id guarantees there is at most one.
func (s *Store) GetOpenOpening(tableID uint) (*models.TableOpening, error) {
	var opening models.TableOpening
	err := s.db.Where("table_id = ? AND status = ?", tableID, models.OpeningOpen).
		First(&opening).Error
	if err != nil {
		return nil, translate(err)
	}
	return &opening, nil
}

// InsertOpening is the serialization point of the open-table protocol: when
// two callers race, the storage constraint lets exactly one insert through
// and the loser gets ErrConflict.
func (s *Store) InsertOpening(opening *models.TableOpening) error {
	return translate(s.db.Create(opening).Error)
}

func (s *Store) UpdateOpening(opening *models.TableOpening) error {
	return translate(s.db.Save(opening).Error)
}

func (s *Store) ListOpenings(tableID uint) ([]models.TableOpening, error) {
	var openings []models.TableOpening
	err := s.db.Where("table_id = ?", tableID).Order("opened_at desc").Find(&openings).Error
	if err != nil {
		return nil, translate(err)
	}
	return openings, nil
}
