package database

import (
	"errors"

	"github.com/google/uuid"
	config "github.com/jkimani85/coaching_marketplace/configs"
	"github.com/jkimani85/coaching_marketplace/models"
	"github.com/jkimani85/coaching_marketplace/services"
	"gorm.io/gorm"
)

// ProfileStore is the gorm-backed services.ProfileStore.
type ProfileStore struct {
	DB *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{DB: db}
}

func (s *ProfileStore) GetOrCreate(tutorID uuid.UUID, tutorType string) (*models.TutorCoachingProfile, error) {
	timezone := config.Config("DEFAULT_TIMEZONE")
	if timezone == "" {
		timezone = "Africa/Nairobi"
	}

	var profile models.TutorCoachingProfile
	err := s.DB.
		Where(models.TutorCoachingProfile{TutorID: tutorID, TutorType: tutorType}).
		Attrs(models.TutorCoachingProfile{
			Currency:            "USD",
			Specializations:     models.StringList{},
			IsAcceptingBookings: true,
			MinDurationMinutes:  30,
			MaxDurationMinutes:  120,
			Timezone:            timezone,
		}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileStore) Find(tutorID uuid.UUID, tutorType string) (*models.TutorCoachingProfile, error) {
	var profile models.TutorCoachingProfile
	err := s.DB.First(&profile, "tutor_id = ? AND tutor_type = ?", tutorID, tutorType).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileStore) Save(profile *models.TutorCoachingProfile) error {
	return s.DB.Save(profile).Error
}
