package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NoteRequest struct {
	Note *string `json:"note"`
}

type CounterProposeRequest struct {
	NewStartTime string  `json:"new_start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	NewEndTime   string  `json:"new_end_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Note         *string `json:"note"`
}

func ListTutorBookingRequests(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	status := c.Query("status")

	requests, pagination, err := negotiationService.ListForTutor(tutorID, tutorType, status, page, pageSize)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       requests,
		"pagination": pagination,
	})
}

func GetTutorBookingRequest(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	request, err := negotiationService.GetDetailForTutor(tutorID, tutorType, requestID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}

func AcceptBookingRequest(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	var req NoteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
	}

	request, err := negotiationService.Accept(tutorID, tutorType, requestID, req.Note)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}

func DeclineBookingRequest(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	var req NoteRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
		}
	}

	request, err := negotiationService.Decline(tutorID, tutorType, requestID, req.Note)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}

func CounterProposeBookingRequest(c *fiber.Ctx) error {
	tutorID, tutorType, err := tutorIdentity(c)
	if err != nil {
		return fail(c, err)
	}
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	var req CounterProposeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	newStart, _ := time.Parse(time.RFC3339, req.NewStartTime)
	newEnd, _ := time.Parse(time.RFC3339, req.NewEndTime)

	request, err := negotiationService.CounterPropose(tutorID, tutorType, requestID, newStart, newEnd, req.Note)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}
