package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/database"
	"github.com/jkimani85/coaching_marketplace/middleware"
	"github.com/jkimani85/coaching_marketplace/services"
)

var validate = validator.New()

var (
	negotiationService  *services.NegotiationService
	availabilityService *services.AvailabilityService
	profileService      *services.ProfileService
)

// InitServices wires the gorm stores into the service layer. Must run
// after database.ConnectDB.
func InitServices() {
	bookings := database.NewBookingStore(database.DB)
	slots := database.NewSlotStore(database.DB)
	profiles := database.NewProfileStore(database.DB)

	negotiationService = services.NewNegotiationService(bookings, profiles)
	availabilityService = services.NewAvailabilityService(slots, profiles)
	profileService = services.NewProfileService(profiles)
}

func fail(c *fiber.Ctx, err error) error {
	svcErr := services.AsError(err)
	return c.Status(svcErr.Code).JSON(fiber.Map{"error": svcErr.Message})
}

// tutorIdentity resolves the caller into the (tutorID, tutorType) pair
// that scopes everything tutor-owned.
func tutorIdentity(c *fiber.Ctx) (uuid.UUID, string, error) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	return middleware.ResolveTutorIdentity(identity)
}

func studentIdentity(c *fiber.Ctx) (uuid.UUID, error) {
	identity, err := middleware.CurrentIdentity(c)
	if err != nil {
		return uuid.Nil, err
	}
	return identity.UserID, nil
}
