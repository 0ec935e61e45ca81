package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/providerhub-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type IdentityHandler struct {
	identity *services.IdentityService
	accounts *services.AccountService
	clientID string
}

func NewIdentityHandler(identity *services.IdentityService, accounts *services.AccountService, clientID string) *IdentityHandler {
	return &IdentityHandler{identity: identity, accounts: accounts, clientID: clientID}
}

// ClientID exposes the audience the web client must request tokens for.
func (h *IdentityHandler) ClientID(c *fiber.Ctx) error {
	return c.JSON(dto.ClientIDResponse{ClientID: h.clientID})
}

func (h *IdentityHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Token) == "" {
		return badRequest(c, "Missing token!")
	}

	res, err := h.identity.SignIn(c.UserContext(), req.Token, req.Role)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.ValidationResponse{
		Message: "success!",
		Status:  string(res.Status),
		Email:   res.Claims.Email,
		Name:    res.Claims.Name,
	})
}

func (h *IdentityHandler) DeleteProfile(c *fiber.Ctx) error {
	var req dto.DeleteProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Token) == "" {
		return badRequest(c, "Missing token!")
	}

	counts, err := h.accounts.Erase(c.UserContext(), req.Token)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(dto.DeleteProfileResponse{
		Message: "Your account is deleted!",
		Deleted: counts,
	})
}
