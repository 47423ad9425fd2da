package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/jkimani85/coaching_marketplace/models"
	"github.com/jkimani85/coaching_marketplace/services"
)

const (
	RoleStudent          = "student"
	RoleSoleTutor        = "sole_tutor"
	RoleOrganization     = "organization"
	RoleOrganizationUser = "organization_user"
)

// Identity is the resolved caller: who they are and, when the role is
// bound to an organization, which one.
type Identity struct {
	UserID         uuid.UUID
	Role           string
	OrganizationID *uuid.UUID
}

// CurrentIdentity reads the verified JWT claims placed by Protected().
func CurrentIdentity(c *fiber.Ctx) (*Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, services.ErrUnauthenticated("missing authentication")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, services.ErrUnauthenticated("missing authentication")
	}

	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, services.ErrUnauthenticated("missing authentication")
	}

	identity := &Identity{UserID: userID}
	identity.Role, _ = claims["role"].(string)

	if orgStr, ok := claims["organization_id"].(string); ok {
		if orgID, err := uuid.Parse(orgStr); err == nil {
			identity.OrganizationID = &orgID
		}
	}
	return identity, nil
}

// ResolveTutorIdentity maps the caller's role onto the (tutorID,
// tutorType) pair that scopes profiles, slots and tutor-side bookings.
// Pure mapping; the negotiation and availability cores only ever see the
// resolved pair.
func ResolveTutorIdentity(identity *Identity) (uuid.UUID, string, error) {
	switch identity.Role {
	case RoleSoleTutor:
		return identity.UserID, models.TutorTypeSole, nil
	case RoleOrganization:
		return identity.UserID, models.TutorTypeOrganization, nil
	case RoleOrganizationUser:
		if identity.OrganizationID == nil {
			return uuid.Nil, "", services.ErrForbidden("account is not linked to an organization")
		}
		return *identity.OrganizationID, models.TutorTypeOrganization, nil
	}
	return uuid.Nil, "", services.ErrForbidden("this action requires a tutor account")
}
