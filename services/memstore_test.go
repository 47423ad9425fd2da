package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/models"
)

// In-memory stores backing the service tests. Find methods hand out
// copies so a failed operation cannot leak partial mutations into the
// "persisted" state.

type memBookingStore struct {
	rows map[uuid.UUID]*models.BookingRequest
}

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{rows: map[uuid.UUID]*models.BookingRequest{}}
}

func (s *memBookingStore) put(req *models.BookingRequest) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	clone := *req
	s.rows[req.ID] = &clone
}

func (s *memBookingStore) get(id uuid.UUID) *models.BookingRequest {
	return s.rows[id]
}

func (s *memBookingStore) FindForTutor(id, tutorID uuid.UUID, tutorType string) (*models.BookingRequest, error) {
	row, ok := s.rows[id]
	if !ok || row.TutorID != tutorID || row.TutorType != tutorType {
		return nil, ErrNoRecord
	}
	clone := *row
	return &clone, nil
}

func (s *memBookingStore) FindForStudent(id, studentID uuid.UUID) (*models.BookingRequest, error) {
	row, ok := s.rows[id]
	if !ok || row.StudentID != studentID {
		return nil, ErrNoRecord
	}
	clone := *row
	return &clone, nil
}

func (s *memBookingStore) ListForTutor(tutorID uuid.UUID, tutorType, status string, offset, limit int) ([]models.BookingRequest, int64, error) {
	var matches []models.BookingRequest
	for _, row := range s.rows {
		if row.TutorID != tutorID || row.TutorType != tutorType {
			continue
		}
		if status != "" && row.Status != status {
			continue
		}
		matches = append(matches, *row)
	}
	total := int64(len(matches))
	if offset >= len(matches) {
		return []models.BookingRequest{}, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (s *memBookingStore) ListForStudent(studentID uuid.UUID, status string, offset, limit int) ([]models.BookingRequest, int64, error) {
	var matches []models.BookingRequest
	for _, row := range s.rows {
		if row.StudentID != studentID {
			continue
		}
		if status != "" && row.Status != status {
			continue
		}
		matches = append(matches, *row)
	}
	total := int64(len(matches))
	if offset >= len(matches) {
		return []models.BookingRequest{}, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (s *memBookingStore) UpdateWithStatus(b *models.BookingRequest, expectedStatus string) error {
	row, ok := s.rows[b.ID]
	if !ok || row.Status != expectedStatus {
		return ErrStaleStatus
	}
	clone := *b
	s.rows[b.ID] = &clone
	return nil
}

type memSlotStore struct {
	rows map[uuid.UUID]*models.AvailabilitySlot
}

func newMemSlotStore() *memSlotStore {
	return &memSlotStore{rows: map[uuid.UUID]*models.AvailabilitySlot{}}
}

func (s *memSlotStore) put(slot *models.AvailabilitySlot) {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	clone := *slot
	s.rows[slot.ID] = &clone
}

func (s *memSlotStore) ListActive(tutorID uuid.UUID, tutorType string) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	for _, row := range s.rows {
		if row.TutorID == tutorID && row.TutorType == tutorType && row.IsActive {
			slots = append(slots, *row)
		}
	}
	return slots, nil
}

func (s *memSlotStore) HasOverlap(tutorID uuid.UUID, tutorType string, isRecurring bool, dayOfWeek *int, specificDate *time.Time, start, end string) (bool, error) {
	for _, row := range s.rows {
		if row.TutorID != tutorID || row.TutorType != tutorType || !row.IsActive || row.IsRecurring != isRecurring {
			continue
		}
		if isRecurring {
			if *row.DayOfWeek != *dayOfWeek {
				continue
			}
		} else if !row.SpecificDate.Equal(*specificDate) {
			continue
		}
		if row.StartTime < end && row.EndTime > start {
			return true, nil
		}
	}
	return false, nil
}

func (s *memSlotStore) CreateBatch(slots []*models.AvailabilitySlot) error {
	for _, slot := range slots {
		s.put(slot)
	}
	return nil
}

func (s *memSlotStore) Find(id, tutorID uuid.UUID, tutorType string) (*models.AvailabilitySlot, error) {
	row, ok := s.rows[id]
	if !ok || row.TutorID != tutorID || row.TutorType != tutorType {
		return nil, ErrNoRecord
	}
	clone := *row
	return &clone, nil
}

func (s *memSlotStore) Save(slot *models.AvailabilitySlot) error {
	clone := *slot
	s.rows[slot.ID] = &clone
	return nil
}

func (s *memSlotStore) Delete(id, tutorID uuid.UUID, tutorType string) error {
	row, ok := s.rows[id]
	if !ok || row.TutorID != tutorID || row.TutorType != tutorType {
		return ErrNoRecord
	}
	delete(s.rows, id)
	return nil
}

func (s *memSlotStore) DeleteMany(ids []uuid.UUID, tutorID uuid.UUID, tutorType string) (int64, error) {
	var removed int64
	for _, id := range ids {
		row, ok := s.rows[id]
		if !ok || row.TutorID != tutorID || row.TutorType != tutorType {
			continue
		}
		delete(s.rows, id)
		removed++
	}
	return removed, nil
}

type profileKey struct {
	tutorID   uuid.UUID
	tutorType string
}

type memProfileStore struct {
	rows map[profileKey]*models.TutorCoachingProfile
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{rows: map[profileKey]*models.TutorCoachingProfile{}}
}

func (s *memProfileStore) put(profile *models.TutorCoachingProfile) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	clone := *profile
	s.rows[profileKey{profile.TutorID, profile.TutorType}] = &clone
}

func (s *memProfileStore) GetOrCreate(tutorID uuid.UUID, tutorType string) (*models.TutorCoachingProfile, error) {
	key := profileKey{tutorID, tutorType}
	if row, ok := s.rows[key]; ok {
		clone := *row
		return &clone, nil
	}
	profile := &models.TutorCoachingProfile{
		ID:                  uuid.New(),
		TutorID:             tutorID,
		TutorType:           tutorType,
		Currency:            "USD",
		Specializations:     models.StringList{},
		IsAcceptingBookings: true,
		MinDurationMinutes:  30,
		MaxDurationMinutes:  120,
		Timezone:            "Africa/Nairobi",
	}
	s.rows[key] = profile
	clone := *profile
	return &clone, nil
}

func (s *memProfileStore) Find(tutorID uuid.UUID, tutorType string) (*models.TutorCoachingProfile, error) {
	row, ok := s.rows[profileKey{tutorID, tutorType}]
	if !ok {
		return nil, ErrNoRecord
	}
	clone := *row
	return &clone, nil
}

func (s *memProfileStore) Save(profile *models.TutorCoachingProfile) error {
	clone := *profile
	s.rows[profileKey{profile.TutorID, profile.TutorType}] = &clone
	return nil
}
