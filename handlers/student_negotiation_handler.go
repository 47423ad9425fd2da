package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListMyBookingRequests(c *fiber.Ctx) error {
	studentID, err := studentIdentity(c)
	if err != nil {
		return fail(c, err)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	status := c.Query("status")

	requests, pagination, err := negotiationService.ListForStudent(studentID, status, page, pageSize)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"data":       requests,
		"pagination": pagination,
	})
}

func GetMyBookingRequest(c *fiber.Ctx) error {
	studentID, err := studentIdentity(c)
	if err != nil {
		return fail(c, err)
	}
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	request, err := negotiationService.GetDetailForStudent(studentID, requestID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}

func AcceptCounterProposal(c *fiber.Ctx) error {
	studentID, err := studentIdentity(c)
	if err != nil {
		return fail(c, err)
	}
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request id"})
	}

	request, err := negotiationService.AcceptCounter(studentID, requestID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}

func DeclineCounterProposal(c *fiber.Ctx) error {
	studentID, err := studentIdentity(c)
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

	request, err := negotiationService.DeclineCounter(studentID, requestID, req.Note)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(request)
}
