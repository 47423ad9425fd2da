package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/services"
)

type SlotRequest struct {
	IsRecurring  bool    `json:"is_recurring"`
	DayOfWeek    *int    `json:"day_of_week"`
	SpecificDate *string `json:"specific_date"`
	StartTime    string  `json:"start_time" validate:"required"`
	EndTime      string  `json:"end_time" validate:"required"`
	Timezone     string  `json:"timezone"`
}

type AddSlotsRequest struct {
	Slots []SlotRequest `json:"slots" validate:"required,min=1,max=20,dive"`
}

type UpdateSlotRequest struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Timezone  *string `json:"timezone"`
	IsActive  *bool   `json:"is_active"`
}

type BulkDeleteSlotsRequest struct {
	SlotIDs []string `json:"slot_ids" validate:"required,min=1,dive,uuid"`
}

func GetMyAvailability(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}

	view, err := availabilityService.List(tutorID, tutorType)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func AddAvailabilitySlots(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}

	var req AddSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	inputs := make([]services.SlotInput, len(req.Slots))
	for i, slot := range req.Slots {
		input := services.SlotInput{
			IsRecurring: slot.IsRecurring,
			DayOfWeek:   slot.DayOfWeek,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			Timezone:    slot.Timezone,
		}
		if slot.SpecificDate != nil {
			date, err := time.Parse("2006-01-02", *slot.SpecificDate)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "specific_date must be in YYYY-MM-DD format"})
			}
			input.SpecificDate = &date
		}
		inputs[i] = input
	}

	created, err := availabilityService.AddSlots(tutorID, tutorType, inputs)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func UpdateAvailabilitySlot(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}
	slotID, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot id"})
	}

	var req UpdateSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	slot, err := availabilityService.UpdateSlot(tutorID, tutorType, slotID, services.SlotPatch{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Timezone:  req.Timezone,
		IsActive:  req.IsActive,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(slot)
}

func DeleteAvailabilitySlot(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}
	slotID, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot id"})
	}

	if err := availabilityService.DeleteSlot(tutorID, tutorType, slotID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func BulkDeleteAvailabilitySlots(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}

	var req BulkDeleteSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	slotIDs := make([]uuid.UUID, len(req.SlotIDs))
	for i, raw := range req.SlotIDs {
		slotIDs[i] = uuid.MustParse(raw)
	}

	removed, err := availabilityService.BulkDeleteSlots(tutorID, tutorType, slotIDs)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted_count": removed})
}
