package routes

import (
	"github.com/jkimani85/coaching_marketplace/handlers"
	"github.com/jkimani85/coaching_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tutor := api.Group("/tutor", middleware.Protected(), middleware.TutorRequired())

	bookings := tutor.Group("/bookings")
	bookings.Get("", handlers.ListTutorBookingRequests)
	bookings.Get("/:requestId", handlers.GetTutorBookingRequest)
	bookings.Post("/:requestId/accept", handlers.AcceptBookingRequest)
	bookings.Post("/:requestId/decline", handlers.DeclineBookingRequest)
	bookings.Post("/:requestId/counter", handlers.CounterProposeBookingRequest)

	availability := tutor.Group("/availability")
	availability.Get("", handlers.GetMyAvailability)
	availability.Post("", handlers.AddAvailabilitySlots)
	availability.Patch("/:slotId", handlers.UpdateAvailabilitySlot)
	availability.Delete("/:slotId", handlers.DeleteAvailabilitySlot)
	availability.Post("/bulk-delete", handlers.BulkDeleteAvailabilitySlots)

	profile := tutor.Group("/profile")
	profile.Get("", handlers.GetMyCoachingProfile)
	profile.Put("", handlers.UpdateMyCoachingProfile)
}
