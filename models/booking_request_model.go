package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending         = "pending"
	BookingStatusCounterProposed = "counter_proposed"
	BookingStatusAccepted        = "accepted"
	BookingStatusDeclined        = "declined"
	BookingStatusExpired         = "expired"
)

const (
	AcceptedByTutor   = "tutor"
	AcceptedByStudent = "student"
)

const (
	TutorTypeSole         = "sole_tutor"
	TutorTypeOrganization = "organization"
)

type BookingRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`
	TutorID   uuid.UUID `gorm:"not null;index:idx_booking_tutor" json:"tutor_id"`
	TutorType string    `gorm:"size:30;not null;index:idx_booking_tutor" json:"tutor_type"`

	Topic       string `gorm:"size:255;not null" json:"topic"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100" json:"category"`

	HourlyRate float64 `gorm:"type:numeric(10,2);not null" json:"hourly_rate"`
	Currency   string  `gorm:"size:3;not null;default:'USD'" json:"currency"`

	ProposedStartTime       time.Time `gorm:"not null" json:"proposed_start_time"`
	ProposedEndTime         time.Time `gorm:"not null" json:"proposed_end_time"`
	ProposedDurationMinutes int       `gorm:"not null" json:"proposed_duration_minutes"`
	IsFromAvailability      bool      `gorm:"not null;default:false" json:"is_from_availability"`

	CounterProposedStartTime       *time.Time `json:"counter_proposed_start_time,omitempty"`
	CounterProposedEndTime         *time.Time `json:"counter_proposed_end_time,omitempty"`
	CounterProposedDurationMinutes *int       `json:"counter_proposed_duration_minutes,omitempty"`

	EstimatedPrice float64  `gorm:"type:numeric(10,2)" json:"estimated_price"`
	FinalPrice     *float64 `gorm:"type:numeric(10,2)" json:"final_price,omitempty"`

	Status     string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	AcceptedBy *string    `gorm:"size:10" json:"accepted_by,omitempty"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	DeclinedAt *time.Time `json:"declined_at,omitempty"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`

	StudentNote *string `gorm:"type:text" json:"student_note,omitempty"`
	TutorNote   *string `gorm:"type:text" json:"tutor_note,omitempty"`

	// Set by the session workflow once a request is accepted; never
	// written by the negotiation engine.
	SessionID *uuid.UUID `json:"session_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
