package services

import (
	"errors"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	config "github.com/jkimani85/coaching_marketplace/configs"
	"github.com/jkimani85/coaching_marketplace/models"
	"github.com/jkimani85/coaching_marketplace/utils"
	"go.uber.org/zap"
)

const maxSlotsPerBatch = 20

const fallbackTimezone = "Africa/Nairobi"

var clockTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// SlotInput is one slot in an add batch.
type SlotInput struct {
	IsRecurring  bool
	DayOfWeek    *int
	SpecificDate *time.Time
	StartTime    string
	EndTime      string
	Timezone     string
}

// SlotPatch carries the fields a single-slot update may change. Nil
// fields are left untouched.
type SlotPatch struct {
	StartTime *string
	EndTime   *string
	Timezone  *string
	IsActive  *bool
}

// AvailabilityView groups a tutor's active slots the way the calendar
// consumes them: weekly recurring windows first, then one-off dates.
type AvailabilityView struct {
	Recurring []models.AvailabilitySlot `json:"recurring"`
	Specific  []models.AvailabilitySlot `json:"specific"`
}

// AvailabilityService validates and stores a tutor's availability
// calendar. Overlap between active slots on the same recurrence key is
// rejected at creation time; updates deliberately do not re-check
// overlap against siblings.
type AvailabilityService struct {
	slots           SlotStore
	profiles        ProfileStore
	now             func() time.Time
	defaultTimezone string
	log             *zap.Logger
}

func NewAvailabilityService(slots SlotStore, profiles ProfileStore) *AvailabilityService {
	tz := config.Config("DEFAULT_TIMEZONE")
	if tz == "" {
		tz = fallbackTimezone
	}
	return &AvailabilityService{
		slots:           slots,
		profiles:        profiles,
		now:             time.Now,
		defaultTimezone: tz,
		log:             utils.GetLogger(),
	}
}

func (s *AvailabilityService) List(tutorID uuid.UUID, tutorType string) (*AvailabilityView, error) {
	slots, err := s.slots.ListActive(tutorID, tutorType)
	if err != nil {
		return nil, err
	}

	view := &AvailabilityView{
		Recurring: []models.AvailabilitySlot{},
		Specific:  []models.AvailabilitySlot{},
	}
	for _, slot := range slots {
		if slot.IsRecurring {
			view.Recurring = append(view.Recurring, slot)
		} else {
			view.Specific = append(view.Specific, slot)
		}
	}

	sort.Slice(view.Recurring, func(i, j int) bool {
		a, b := view.Recurring[i], view.Recurring[j]
		if *a.DayOfWeek != *b.DayOfWeek {
			return *a.DayOfWeek < *b.DayOfWeek
		}
		return a.StartTime < b.StartTime
	})
	sort.Slice(view.Specific, func(i, j int) bool {
		a, b := view.Specific[i], view.Specific[j]
		if !a.SpecificDate.Equal(*b.SpecificDate) {
			return a.SpecificDate.Before(*b.SpecificDate)
		}
		return a.StartTime < b.StartTime
	})
	return view, nil
}

// AddSlots validates every slot in the batch before anything is written,
// so one bad slot rejects the whole batch. Failures surface in input
// order, first failure wins. Overlap is checked both against stored
// active slots and between items of the batch itself.
func (s *AvailabilityService) AddSlots(tutorID uuid.UUID, tutorType string, inputs []SlotInput) ([]models.AvailabilitySlot, error) {
	if len(inputs) == 0 {
		return nil, ErrValidation("at least one slot is required")
	}
	if len(inputs) > maxSlotsPerBatch {
		return nil, ErrValidation("cannot add more than %d slots per request", maxSlotsPerBatch)
	}

	defaultTZ := s.defaultTimezone
	if profile, err := s.profiles.Find(tutorID, tutorType); err == nil && profile.Timezone != "" {
		defaultTZ = profile.Timezone
	} else if err != nil && !errors.Is(err, ErrNoRecord) {
		return nil, err
	}

	pending := make([]*models.AvailabilitySlot, 0, len(inputs))
	for i, input := range inputs {
		slot, err := s.validateSlot(tutorID, tutorType, input, pending)
		if err != nil {
			s.log.Debug("slot batch rejected",
				zap.Int("index", i),
				zap.Error(err))
			return nil, err
		}
		if slot.Timezone == "" {
			slot.Timezone = defaultTZ
		}
		pending = append(pending, slot)
	}

	if err := s.slots.CreateBatch(pending); err != nil {
		return nil, err
	}

	created := make([]models.AvailabilitySlot, len(pending))
	for i, slot := range pending {
		created[i] = *slot
	}
	return created, nil
}

func (s *AvailabilityService) validateSlot(tutorID uuid.UUID, tutorType string, input SlotInput, batch []*models.AvailabilitySlot) (*models.AvailabilitySlot, error) {
	if input.StartTime == "" || input.EndTime == "" {
		return nil, ErrValidation("start_time and end_time are required")
	}
	if !clockTimePattern.MatchString(input.StartTime) || !clockTimePattern.MatchString(input.EndTime) {
		return nil, ErrValidation("times must be in HH:MM format")
	}
	if input.StartTime >= input.EndTime {
		return nil, ErrValidation("start_time %s must be before end_time %s", input.StartTime, input.EndTime)
	}

	slot := &models.AvailabilitySlot{
		TutorID:     tutorID,
		TutorType:   tutorType,
		IsRecurring: input.IsRecurring,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Timezone:    input.Timezone,
		IsActive:    true,
	}

	if input.IsRecurring {
		if input.DayOfWeek == nil {
			return nil, ErrValidation("day_of_week is required for recurring slots")
		}
		if *input.DayOfWeek < 0 || *input.DayOfWeek > 6 {
			return nil, ErrValidation("day_of_week must be between 0 and 6")
		}
		slot.DayOfWeek = input.DayOfWeek
	} else {
		if input.SpecificDate == nil {
			return nil, ErrValidation("specific_date is required for one-off slots")
		}
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		date := *input.SpecificDate
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
		if day.Before(today) {
			return nil, ErrValidation("specific_date cannot be in the past")
		}
		slot.SpecificDate = &day
	}

	overlaps, err := s.slots.HasOverlap(tutorID, tutorType, slot.IsRecurring, slot.DayOfWeek, slot.SpecificDate, slot.StartTime, slot.EndTime)
	if err != nil {
		return nil, err
	}
	if !overlaps {
		overlaps = overlapsBatch(slot, batch)
	}
	if overlaps {
		return nil, ErrConflict("slot %s-%s overlaps an existing availability slot", slot.StartTime, slot.EndTime)
	}
	return slot, nil
}

func overlapsBatch(slot *models.AvailabilitySlot, batch []*models.AvailabilitySlot) bool {
	for _, other := range batch {
		if other.IsRecurring != slot.IsRecurring {
			continue
		}
		if slot.IsRecurring {
			if *other.DayOfWeek != *slot.DayOfWeek {
				continue
			}
		} else if !other.SpecificDate.Equal(*slot.SpecificDate) {
			continue
		}
		// Half-open intervals: touching windows do not overlap.
		if other.StartTime < slot.EndTime && other.EndTime > slot.StartTime {
			return true
		}
	}
	return false
}

// UpdateSlot merges the patch into the slot and re-validates only the
// window ordering. Overlap against sibling slots is enforced at creation
// time only; an update can move a slot onto a sibling.
func (s *AvailabilityService) UpdateSlot(tutorID uuid.UUID, tutorType string, slotID uuid.UUID, patch SlotPatch) (*models.AvailabilitySlot, error) {
	slot, err := s.slots.Find(slotID, tutorID, tutorType)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, ErrNotFound("availability slot not found")
		}
		return nil, err
	}

	if patch.StartTime != nil {
		if !clockTimePattern.MatchString(*patch.StartTime) {
			return nil, ErrValidation("start_time must be in HH:MM format")
		}
		slot.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		if !clockTimePattern.MatchString(*patch.EndTime) {
			return nil, ErrValidation("end_time must be in HH:MM format")
		}
		slot.EndTime = *patch.EndTime
	}
	if patch.Timezone != nil {
		slot.Timezone = *patch.Timezone
	}
	if patch.IsActive != nil {
		slot.IsActive = *patch.IsActive
	}

	if slot.StartTime >= slot.EndTime {
		return nil, ErrValidation("start_time %s must be before end_time %s", slot.StartTime, slot.EndTime)
	}

	if err := s.slots.Save(slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *AvailabilityService) DeleteSlot(tutorID uuid.UUID, tutorType string, slotID uuid.UUID) error {
	if err := s.slots.Delete(slotID, tutorID, tutorType); err != nil {
		if errors.Is(err, ErrNoRecord) {
			return ErrNotFound("availability slot not found")
		}
		return err
	}
	return nil
}

// BulkDeleteSlots removes every listed slot the tutor owns and reports
// how many were actually removed. Ids owned by someone else are ignored.
func (s *AvailabilityService) BulkDeleteSlots(tutorID uuid.UUID, tutorType string, slotIDs []uuid.UUID) (int64, error) {
	if len(slotIDs) == 0 {
		return 0, ErrValidation("at least one slot id is required")
	}
	removed, err := s.slots.DeleteMany(slotIDs, tutorID, tutorType)
	if err != nil {
		return 0, err
	}
	s.log.Info("availability slots removed",
		zap.String("tutor_id", tutorID.String()),
		zap.Int64("removed", removed))
	return removed, nil
}
