package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/models"
)

func newAvailabilityFixture() (*AvailabilityService, *memSlotStore, *memProfileStore) {
	slots := newMemSlotStore()
	profiles := newMemProfileStore()
	svc := NewAvailabilityService(slots, profiles)
	svc.now = func() time.Time { return fixedNow }
	return svc, slots, profiles
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func boolPtr(v bool) *bool { return &v }

func datePtr(v time.Time) *time.Time { return &v }

func recurringInput(day int, start, end string) SlotInput {
	return SlotInput{IsRecurring: true, DayOfWeek: intPtr(day), StartTime: start, EndTime: end}
}

func TestAddRecurringSlotRejectsOverlap(t *testing.T) {
	svc, _, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	if _, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{recurringInput(1, "09:00", "10:00")}); err != nil {
		t.Fatalf("first add failed: %v", err)
	}

	_, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{recurringInput(1, "09:30", "10:30")})
	assertCode(t, err, 409)

	// Touching windows do not overlap.
	if _, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{recurringInput(1, "10:00", "11:00")}); err != nil {
		t.Fatalf("touching slot rejected: %v", err)
	}

	// A different day is a different recurrence key.
	if _, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{recurringInput(2, "09:30", "10:30")}); err != nil {
		t.Fatalf("other-day slot rejected: %v", err)
	}
}

func TestAddBatchIsAllOrNothing(t *testing.T) {
	svc, slots, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	_, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{
		recurringInput(1, "09:00", "10:00"),
		recurringInput(3, "10:00", "09:00"), // inverted window
	})
	assertCode(t, err, 400)

	if len(slots.rows) != 0 {
		t.Errorf("expected no slots persisted after a failed batch, got %d", len(slots.rows))
	}
}

func TestAddBatchDetectsInBatchOverlap(t *testing.T) {
	svc, slots, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	_, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{
		recurringInput(1, "09:00", "10:00"),
		recurringInput(1, "09:45", "10:45"),
	})
	assertCode(t, err, 409)

	if len(slots.rows) != 0 {
		t.Error("no slot from the batch may be persisted")
	}
}

func TestAddBatchSizeLimit(t *testing.T) {
	svc, _, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	var inputs []SlotInput
	for day := 0; day < 7; day++ {
		for h := 8; h < 11; h++ {
			inputs = append(inputs, recurringInput(day, time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04"), time.Date(0, 1, 1, h+1, 0, 0, 0, time.UTC).Format("15:04")))
		}
	}
	// 21 slots
	_, err := svc.AddSlots(tutorID, models.TutorTypeSole, inputs)
	assertCode(t, err, 400)

	_, err = svc.AddSlots(tutorID, models.TutorTypeSole, nil)
	assertCode(t, err, 400)
}

func TestAddSpecificSlotRejectsPastDate(t *testing.T) {
	svc, _, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	yesterday := fixedNow.AddDate(0, 0, -1)
	_, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{{
		SpecificDate: datePtr(yesterday),
		StartTime:    "09:00",
		EndTime:      "10:00",
	}})
	assertCode(t, err, 400)

	// Today is allowed: the comparison is date-only.
	_, err = svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{{
		SpecificDate: datePtr(fixedNow),
		StartTime:    "09:00",
		EndTime:      "10:00",
	}})
	if err != nil {
		t.Fatalf("same-day slot rejected: %v", err)
	}
}

func TestAddSlotRequiresRecurrenceKey(t *testing.T) {
	svc, _, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	_, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{{
		IsRecurring: true, StartTime: "09:00", EndTime: "10:00",
	}})
	assertCode(t, err, 400)

	_, err = svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{{
		IsRecurring: true, DayOfWeek: intPtr(7), StartTime: "09:00", EndTime: "10:00",
	}})
	assertCode(t, err, 400)

	_, err = svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{{
		StartTime: "09:00", EndTime: "10:00",
	}})
	assertCode(t, err, 400)
}

func TestAddSlotDefaultsTimezoneFromProfile(t *testing.T) {
	svc, _, profiles := newAvailabilityFixture()
	tutorID := uuid.New()
	profiles.put(&models.TutorCoachingProfile{
		TutorID:   tutorID,
		TutorType: models.TutorTypeSole,
		Timezone:  "Europe/Berlin",
	})

	created, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{recurringInput(1, "09:00", "10:00")})
	if err != nil {
		t.Fatalf("AddSlots failed: %v", err)
	}
	if created[0].Timezone != "Europe/Berlin" {
		t.Errorf("timezone = %q, want profile timezone", created[0].Timezone)
	}

	// Explicit timezone wins over the default.
	created, err = svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{{
		IsRecurring: true, DayOfWeek: intPtr(2),
		StartTime: "09:00", EndTime: "10:00",
		Timezone: "America/New_York",
	}})
	if err != nil {
		t.Fatalf("AddSlots failed: %v", err)
	}
	if created[0].Timezone != "America/New_York" {
		t.Errorf("timezone = %q, want explicit timezone", created[0].Timezone)
	}
}

func TestUpdateSlotSkipsOverlapRecheck(t *testing.T) {
	svc, _, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	created, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{
		recurringInput(1, "09:00", "10:00"),
		recurringInput(1, "10:00", "11:00"),
	})
	if err != nil {
		t.Fatalf("AddSlots failed: %v", err)
	}

	// Moving the second slot onto the first succeeds: overlap is only
	// enforced at creation time.
	updated, err := svc.UpdateSlot(tutorID, models.TutorTypeSole, created[1].ID, SlotPatch{
		StartTime: strPtr("09:30"),
	})
	if err != nil {
		t.Fatalf("UpdateSlot failed: %v", err)
	}
	if updated.StartTime != "09:30" {
		t.Errorf("start = %q, want 09:30", updated.StartTime)
	}
}

func TestUpdateSlotValidatesMergedWindow(t *testing.T) {
	svc, _, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	created, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{recurringInput(1, "09:00", "10:00")})
	if err != nil {
		t.Fatalf("AddSlots failed: %v", err)
	}

	_, err = svc.UpdateSlot(tutorID, models.TutorTypeSole, created[0].ID, SlotPatch{
		StartTime: strPtr("10:30"),
	})
	assertCode(t, err, 400)

	deactivated, err := svc.UpdateSlot(tutorID, models.TutorTypeSole, created[0].ID, SlotPatch{
		IsActive: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("UpdateSlot failed: %v", err)
	}
	if deactivated.IsActive {
		t.Error("slot should be inactive")
	}
}

func TestDeleteSlotScopedToOwner(t *testing.T) {
	svc, _, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	created, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{recurringInput(1, "09:00", "10:00")})
	if err != nil {
		t.Fatalf("AddSlots failed: %v", err)
	}

	err = svc.DeleteSlot(uuid.New(), models.TutorTypeSole, created[0].ID)
	assertCode(t, err, 404)

	if err := svc.DeleteSlot(tutorID, models.TutorTypeSole, created[0].ID); err != nil {
		t.Fatalf("DeleteSlot failed: %v", err)
	}
}

func TestBulkDeleteIgnoresForeignSlots(t *testing.T) {
	svc, slots, _ := newAvailabilityFixture()
	tutorID, otherTutor := uuid.New(), uuid.New()

	mine, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{recurringInput(1, "09:00", "10:00")})
	if err != nil {
		t.Fatalf("AddSlots failed: %v", err)
	}
	theirs, err := svc.AddSlots(otherTutor, models.TutorTypeSole, []SlotInput{recurringInput(1, "09:00", "10:00")})
	if err != nil {
		t.Fatalf("AddSlots failed: %v", err)
	}

	removed, err := svc.BulkDeleteSlots(tutorID, models.TutorTypeSole, []uuid.UUID{mine[0].ID, theirs[0].ID})
	if err != nil {
		t.Fatalf("BulkDeleteSlots failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, ok := slots.rows[theirs[0].ID]; !ok {
		t.Error("foreign slot must not be deleted")
	}
}

func TestListPartitionsAndOrders(t *testing.T) {
	svc, _, _ := newAvailabilityFixture()
	tutorID := uuid.New()

	_, err := svc.AddSlots(tutorID, models.TutorTypeSole, []SlotInput{
		recurringInput(3, "14:00", "15:00"),
		recurringInput(1, "11:00", "12:00"),
		recurringInput(1, "09:00", "10:00"),
		{SpecificDate: datePtr(fixedNow.AddDate(0, 0, 5)), StartTime: "08:00", EndTime: "09:00"},
		{SpecificDate: datePtr(fixedNow.AddDate(0, 0, 2)), StartTime: "16:00", EndTime: "17:00"},
	})
	if err != nil {
		t.Fatalf("AddSlots failed: %v", err)
	}

	view, err := svc.List(tutorID, models.TutorTypeSole)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(view.Recurring) != 3 || len(view.Specific) != 2 {
		t.Fatalf("partition = %d/%d, want 3/2", len(view.Recurring), len(view.Specific))
	}
	if *view.Recurring[0].DayOfWeek != 1 || view.Recurring[0].StartTime != "09:00" {
		t.Errorf("first recurring slot = day %d %s", *view.Recurring[0].DayOfWeek, view.Recurring[0].StartTime)
	}
	if *view.Recurring[1].DayOfWeek != 1 || view.Recurring[1].StartTime != "11:00" {
		t.Errorf("second recurring slot = day %d %s", *view.Recurring[1].DayOfWeek, view.Recurring[1].StartTime)
	}
	if *view.Recurring[2].DayOfWeek != 3 {
		t.Errorf("third recurring slot = day %d, want 3", *view.Recurring[2].DayOfWeek)
	}
	if !view.Specific[0].SpecificDate.Before(*view.Specific[1].SpecificDate) {
		t.Error("specific slots must be ordered by date ascending")
	}
}
