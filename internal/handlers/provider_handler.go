package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProviderHandler struct {
	providers *services.ProviderService
	calendars *services.CalendarService
}

func NewProviderHandler(providers *services.ProviderService, calendars *services.CalendarService) *ProviderHandler {
	return &ProviderHandler{providers: providers, calendars: calendars}
}

func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var req dto.ProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	owner, err := ownerEmail(c, req.Email)
	if err != nil {
		return writeError(c, err)
	}

	provider, err := h.providers.Register(c.UserContext(), owner, req.Fields())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(provider)
}

func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	var req dto.ProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	owner, err := ownerEmail(c, req.Email)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.providers.Update(c.UserContext(), owner, req.Fields()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Your information updated!"})
}

func (h *ProviderHandler) List(c *fiber.Ctx) error {
	providers, err := h.providers.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(providers)
}

func (h *ProviderHandler) AttachCalendar(c *fiber.Ctx) error {
	var req dto.CalendarRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.CalendarLink) == "" {
		return badRequest(c, "Missing Calendar Link!")
	}
	owner, err := ownerEmail(c, req.Email)
	if err != nil {
		return writeError(c, err)
	}

	calendar, err := h.calendars.Attach(c.UserContext(), owner, req.CalendarLink)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CalendarResponse{Message: "success", Calendar: calendar})
}

// ownerEmail returns the verified email of the caller when the body names
// the caller's own profile.
func ownerEmail(c *fiber.Ctx, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", errMissingEmail
	}
	identity := middleware.GetIdentity(c)
	if identity == nil || !strings.EqualFold(identity.Email, strings.TrimSpace(email)) {
		return "", errNotOwner
	}
	return identity.Email, nil
}
