package routes

import (
	"github.com/jkimani85/coaching_marketplace/handlers"
	"github.com/jkimani85/coaching_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected(), middleware.StudentRequired())
	booking.Get("", handlers.ListMyBookingRequests)
	booking.Get("/:requestId", handlers.GetMyBookingRequest)
	booking.Post("/:requestId/counter/accept", handlers.AcceptCounterProposal)
	booking.Post("/:requestId/counter/decline", handlers.DeclineCounterProposal)
}
