package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/models"
)

// ErrNoRecord is returned by stores when a scoped lookup matches nothing.
// A row that exists but does not match the caller's identity scope is
// indistinguishable from an absent row.
var ErrNoRecord = errors.New("record not found")

// ErrStaleStatus is returned by BookingStore.UpdateWithStatus when the
// row's status no longer matches the status the caller read. It is how a
// lost-update on a concurrent transition surfaces.
var ErrStaleStatus = errors.New("booking status changed concurrently")

type BookingStore interface {
	FindForTutor(id, tutorID uuid.UUID, tutorType string) (*models.BookingRequest, error)
	FindForStudent(id, studentID uuid.UUID) (*models.BookingRequest, error)
	ListForTutor(tutorID uuid.UUID, tutorType, status string, offset, limit int) ([]models.BookingRequest, int64, error)
	ListForStudent(studentID uuid.UUID, status string, offset, limit int) ([]models.BookingRequest, int64, error)

	// UpdateWithStatus persists the row only if its stored status still
	// equals expectedStatus (compare-and-swap on the status column).
	UpdateWithStatus(b *models.BookingRequest, expectedStatus string) error
}

type SlotStore interface {
	ListActive(tutorID uuid.UUID, tutorType string) ([]models.AvailabilitySlot, error)

	// HasOverlap reports whether any active slot for the tutor on the
	// same recurrence key (day-of-week or specific date) intersects the
	// [start, end) window.
	HasOverlap(tutorID uuid.UUID, tutorType string, isRecurring bool, dayOfWeek *int, specificDate *time.Time, start, end string) (bool, error)

	CreateBatch(slots []*models.AvailabilitySlot) error
	Find(id, tutorID uuid.UUID, tutorType string) (*models.AvailabilitySlot, error)
	Save(slot *models.AvailabilitySlot) error
	Delete(id, tutorID uuid.UUID, tutorType string) error
	DeleteMany(ids []uuid.UUID, tutorID uuid.UUID, tutorType string) (int64, error)
}

type ProfileStore interface {
	// GetOrCreate returns the profile for the tutor identity pair,
	// creating it with schema defaults when absent. The unique index on
	// (tutor_id, tutor_type) guarantees at most one row per identity.
	GetOrCreate(tutorID uuid.UUID, tutorType string) (*models.TutorCoachingProfile, error)
	Find(tutorID uuid.UUID, tutorType string) (*models.TutorCoachingProfile, error)
	Save(profile *models.TutorCoachingProfile) error
}
