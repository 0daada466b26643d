package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Caisio-Cloud/popmath-game/dto"
	"github.com/Caisio-Cloud/popmath-game/shared"
)

type UserHandler struct {
	userSvc UserServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

// @Summary Get user stats
// @Description Level, accuracy, money and streak aggregates
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.UserStatsResponse}
// @Router /api/v1/user/stats [get]
func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	stats, err := h.userSvc.GetStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, stats)
}

// @Summary Get progress history
// @Description Append-only per-answer log, oldest first
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.ProgressHistoryResponse}
// @Router /api/v1/user/progress [get]
func (h *UserHandler) GetProgressHistory(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	history, err := h.userSvc.GetProgressHistory(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, history)
}

// @Summary Get settings
// @Tags user
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.SettingsResponse}
// @Router /api/v1/user/settings [get]
func (h *UserHandler) GetSettings(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	settings, err := h.userSvc.GetSettings(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, settings)
}

// @Summary Update settings
// @Description Merge the provided fields into the player's settings
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param updateRequest body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} shared.Response{data=dto.SettingsResponse}
// @Router /api/v1/user/settings [put]
func (h *UserHandler) UpdateSettings(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Validation failed", dto.FormatValidationErrors(err))
	}

	settings, err := h.userSvc.UpdateSettings(userID, req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, settings)
}
