package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// StringList is a JSONB-backed list of strings. Keeping it typed (rather
// than a raw json column) means the boundary validation can reject
// anything that is not a flat string array.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringList")
	}
}

type TutorCoachingProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID   uuid.UUID `gorm:"not null;uniqueIndex:idx_tutor_identity" json:"tutor_id"`
	TutorType string    `gorm:"size:30;not null;uniqueIndex:idx_tutor_identity" json:"tutor_type"`

	HourlyRate          float64    `gorm:"type:numeric(10,2);not null;default:0" json:"hourly_rate"`
	Currency            string     `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Bio                 *string    `gorm:"type:text" json:"bio,omitempty"`
	Specializations     StringList `gorm:"type:jsonb;default:'[]'" json:"specializations"`
	IsAcceptingBookings bool       `gorm:"not null;default:true" json:"is_accepting_bookings"`
	MinDurationMinutes  int        `gorm:"not null;default:30" json:"min_duration_minutes"`
	MaxDurationMinutes  int        `gorm:"not null;default:120" json:"max_duration_minutes"`
	Timezone            string     `gorm:"size:64;not null;default:'Africa/Nairobi'" json:"timezone"`

	TotalSessionsCompleted int     `gorm:"not null;default:0" json:"total_sessions_completed"`
	AverageRating          float32 `gorm:"default:0" json:"average_rating"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
