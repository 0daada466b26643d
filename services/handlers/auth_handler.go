package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Caisio-Cloud/popmath-game/dto"
	"github.com/Caisio-Cloud/popmath-game/shared"
)

type AuthHandler struct {
	userSvc UserServiceInterface
}

func NewAuthHandler(userSvc UserServiceInterface) *AuthHandler {
	return &AuthHandler{
		userSvc: userSvc,
	}
}

// @Summary Register
// @Description Create a new player account for a handle
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body dto.RegisterRequest true "Handle"
// @Success 201 {object} shared.Response{data=dto.AuthResponse}
// @Router /api/v1/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Validation failed", dto.FormatValidationErrors(err))
	}

	resp, err := h.userSvc.Register(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", resp)
}

// @Summary Login
// @Description Log an existing player in and load their settings
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body dto.LoginRequest true "Handle"
// @Success 200 {object} shared.Response{data=dto.AuthResponse}
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Validation failed", dto.FormatValidationErrors(err))
	}

	resp, err := h.userSvc.Login(req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Logout
// @Description Acknowledge logout; the client drops its token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response
// @Router /api/v1/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	h.userSvc.Logout(userID)
	return shared.ResponseOK(c, nil)
}
