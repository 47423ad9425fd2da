package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/models"
	"github.com/jkimani85/coaching_marketplace/utils"
	"go.uber.org/zap"
)

const (
	minSessionDurationFloor = 15
	maxSessionDurationFloor = 30
)

// ProfileUpdate carries the fields a tutor may change on their coaching
// profile. Nil fields keep their stored value. Aggregate stats are not
// writable through this path.
type ProfileUpdate struct {
	HourlyRate          *float64
	Currency            *string
	Bio                 *string
	Specializations     *[]string
	IsAcceptingBookings *bool
	MinDurationMinutes  *int
	MaxDurationMinutes  *int
	Timezone            *string
}

type ProfileService struct {
	profiles ProfileStore
	log      *zap.Logger
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles, log: utils.GetLogger()}
}

// GetOrCreate returns the tutor's coaching profile, creating one with
// schema defaults on first access. The unique (tutor_id, tutor_type)
// key guarantees repeated calls settle on the same row.
func (s *ProfileService) GetOrCreate(tutorID uuid.UUID, tutorType string) (*models.TutorCoachingProfile, error) {
	return s.profiles.GetOrCreate(tutorID, tutorType)
}

func (s *ProfileService) Update(tutorID uuid.UUID, tutorType string, update ProfileUpdate) (*models.TutorCoachingProfile, error) {
	profile, err := s.profiles.GetOrCreate(tutorID, tutorType)
	if err != nil {
		return nil, err
	}

	if update.HourlyRate != nil {
		if *update.HourlyRate < 0 {
			return nil, ErrValidation("hourly_rate cannot be negative")
		}
		profile.HourlyRate = *update.HourlyRate
	}
	if update.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*update.Currency))
		if len(currency) != 3 {
			return nil, ErrValidation("currency must be a 3-letter code")
		}
		profile.Currency = currency
	}
	if update.Bio != nil {
		bio := strings.TrimSpace(*update.Bio)
		profile.Bio = &bio
	}
	if update.Specializations != nil {
		specs := make(models.StringList, 0, len(*update.Specializations))
		seen := map[string]bool{}
		for _, raw := range *update.Specializations {
			topic := strings.TrimSpace(raw)
			if topic == "" {
				return nil, ErrValidation("specializations cannot contain empty entries")
			}
			if !seen[topic] {
				seen[topic] = true
				specs = append(specs, topic)
			}
		}
		profile.Specializations = specs
	}
	if update.IsAcceptingBookings != nil {
		profile.IsAcceptingBookings = *update.IsAcceptingBookings
	}
	if update.MinDurationMinutes != nil {
		if *update.MinDurationMinutes < minSessionDurationFloor {
			return nil, ErrValidation("min_duration_minutes must be at least %d", minSessionDurationFloor)
		}
		profile.MinDurationMinutes = *update.MinDurationMinutes
	}
	if update.MaxDurationMinutes != nil {
		if *update.MaxDurationMinutes < maxSessionDurationFloor {
			return nil, ErrValidation("max_duration_minutes must be at least %d", maxSessionDurationFloor)
		}
		profile.MaxDurationMinutes = *update.MaxDurationMinutes
	}
	if update.Timezone != nil {
		tz := strings.TrimSpace(*update.Timezone)
		if tz == "" {
			return nil, ErrValidation("timezone cannot be empty")
		}
		profile.Timezone = tz
	}

	// Cross-field check runs after the merge so a bound left out of this
	// call is validated against its stored value.
	if profile.MinDurationMinutes > profile.MaxDurationMinutes {
		return nil, ErrValidation("min_duration_minutes (%d) cannot exceed max_duration_minutes (%d)", profile.MinDurationMinutes, profile.MaxDurationMinutes)
	}

	if err := s.profiles.Save(profile); err != nil {
		return nil, err
	}

	s.log.Info("coaching profile updated",
		zap.String("tutor_id", tutorID.String()),
		zap.String("tutor_type", tutorType))
	return profile, nil
}
