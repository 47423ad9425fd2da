package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jkimani85/coaching_marketplace/services"
)

type UpdateProfileRequest struct {
	HourlyRate          *float64  `json:"hourly_rate" validate:"omitempty,gte=0"`
	Currency            *string   `json:"currency" validate:"omitempty,len=3"`
	Bio                 *string   `json:"bio"`
	Specializations     *[]string `json:"specializations"`
	IsAcceptingBookings *bool     `json:"is_accepting_bookings"`
	MinDurationMinutes  *int      `json:"min_duration_minutes" validate:"omitempty,gte=15"`
	MaxDurationMinutes  *int      `json:"max_duration_minutes" validate:"omitempty,gte=30"`
	Timezone            *string   `json:"timezone"`
}

func GetMyCoachingProfile(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}

	profile, err := profileService.GetOrCreate(tutorID, tutorType)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

func UpdateMyCoachingProfile(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile, err := profileService.Update(tutorID, tutorType, services.ProfileUpdate{
		HourlyRate:          req.HourlyRate,
		Currency:            req.Currency,
		Bio:                 req.Bio,
		Specializations:     req.Specializations,
		IsAcceptingBookings: req.IsAcceptingBookings,
		MinDurationMinutes:  req.MinDurationMinutes,
		MaxDurationMinutes:  req.MaxDurationMinutes,
		Timezone:            req.Timezone,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}
