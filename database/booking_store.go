package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/models"
	"github.com/jkimani85/coaching_marketplace/services"
	"gorm.io/gorm"
)

// BookingStore is the gorm-backed services.BookingStore.
type BookingStore struct {
	DB *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{DB: db}
}

func (s *BookingStore) FindForTutor(id, tutorID uuid.UUID, tutorType string) (*models.BookingRequest, error) {
	var req models.BookingRequest
	err := s.DB.First(&req, "id = ? AND tutor_id = ? AND tutor_type = ?", id, tutorID, tutorType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *BookingStore) FindForStudent(id, studentID uuid.UUID) (*models.BookingRequest, error) {
	var req models.BookingRequest
	err := s.DB.First(&req, "id = ? AND student_id = ?", id, studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *BookingStore) ListForTutor(tutorID uuid.UUID, tutorType, status string, offset, limit int) ([]models.BookingRequest, int64, error) {
	query := s.DB.Model(&models.BookingRequest{}).
		Where("tutor_id = ? AND tutor_type = ?", tutorID, tutorType)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return listPage(query, offset, limit)
}

func (s *BookingStore) ListForStudent(studentID uuid.UUID, status string, offset, limit int) ([]models.BookingRequest, int64, error) {
	query := s.DB.Model(&models.BookingRequest{}).
		Where("student_id = ?", studentID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return listPage(query, offset, limit)
}

func listPage(query *gorm.DB, offset, limit int) ([]models.BookingRequest, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.BookingRequest
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateWithStatus writes the full row guarded by a compare-and-swap on
// the status column. Zero rows affected means another operation moved
// the request since it was read.
func (s *BookingStore) UpdateWithStatus(b *models.BookingRequest, expectedStatus string) error {
	result := s.DB.Model(b).
		Where("status = ?", expectedStatus).
		Select("*").
		Omit("id", "created_at").
		Updates(b)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return services.ErrStaleStatus
	}
	return nil
}
