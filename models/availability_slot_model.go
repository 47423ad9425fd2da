package models

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilitySlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TutorID   uuid.UUID `gorm:"not null;index:idx_slot_tutor" json:"-"`
	TutorType string    `gorm:"size:30;not null;index:idx_slot_tutor" json:"-"`

	IsRecurring bool `gorm:"not null;default:false" json:"is_recurring"`

	// Exactly one of DayOfWeek / SpecificDate is set, driven by IsRecurring.
	DayOfWeek    *int       `json:"day_of_week,omitempty"`
	SpecificDate *time.Time `gorm:"type:date" json:"specific_date,omitempty"`

	// Time-of-day values as "HH:MM"; lexicographic order matches clock order.
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Timezone string `gorm:"size:64;not null" json:"timezone"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
