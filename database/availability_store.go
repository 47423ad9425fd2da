package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/models"
	"github.com/jkimani85/coaching_marketplace/services"
	"gorm.io/gorm"
)

// SlotStore is the gorm-backed services.SlotStore.
type SlotStore struct {
	DB *gorm.DB
}

func NewSlotStore(db *gorm.DB) *SlotStore {
	return &SlotStore{DB: db}
}

func (s *SlotStore) ListActive(tutorID uuid.UUID, tutorType string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	err := s.DB.
		Where("tutor_id = ? AND tutor_type = ? AND is_active = ?", tutorID, tutorType, true).
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *SlotStore) HasOverlap(tutorID uuid.UUID, tutorType string, isRecurring bool, dayOfWeek *int, specificDate *time.Time, start, end string) (bool, error) {
	query := s.DB.Model(&models.AvailabilitySlot{}).
		Where("tutor_id = ? AND tutor_type = ? AND is_active = ? AND is_recurring = ?", tutorID, tutorType, true, isRecurring).
		Where("start_time < ? AND end_time > ?", end, start)
	if isRecurring {
		query = query.Where("day_of_week = ?", *dayOfWeek)
	} else {
		query = query.Where("specific_date = ?", *specificDate)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *SlotStore) CreateBatch(slots []*models.AvailabilitySlot) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, slot := range slots {
			if err := tx.Create(slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SlotStore) Find(id, tutorID uuid.UUID, tutorType string) (*models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	err := s.DB.First(&slot, "id = ? AND tutor_id = ? AND tutor_type = ?", id, tutorID, tutorType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *SlotStore) Save(slot *models.AvailabilitySlot) error {
	return s.DB.Save(slot).Error
}

func (s *SlotStore) Delete(id, tutorID uuid.UUID, tutorType string) error {
	result := s.DB.
		Where("id = ? AND tutor_id = ? AND tutor_type = ?", id, tutorID, tutorType).
		Delete(&models.AvailabilitySlot{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrNoRecord
	}
	return nil
}

func (s *SlotStore) DeleteMany(ids []uuid.UUID, tutorID uuid.UUID, tutorType string) (int64, error) {
	result := s.DB.
		Where("id IN ? AND tutor_id = ? AND tutor_type = ?", ids, tutorID, tutorType).
		Delete(&models.AvailabilitySlot{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
