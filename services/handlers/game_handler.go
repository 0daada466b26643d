package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Caisio-Cloud/popmath-game/dto"
	"github.com/Caisio-Cloud/popmath-game/shared"
)

type GameHandler struct {
	gameSvc GameServiceInterface
}

func NewGameHandler(gameSvc GameServiceInterface) *GameHandler {
	return &GameHandler{
		gameSvc: gameSvc,
	}
}

// @Summary Start game
// @Description Start a fresh session in a category; difficulty defaults to the player's settings
// @Tags game
// @Accept json
// @Produce json
// @Security Bearer
// @Param startRequest body dto.StartGameRequest true "Category and difficulty"
// @Success 200 {object} shared.Response{data=dto.QuestionResponse}
// @Router /api/v1/game/start [post]
func (h *GameHandler) StartGame(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.StartGameRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Validation failed", dto.FormatValidationErrors(err))
	}

	question, err := h.gameSvc.StartGame(userID, req.CategoryID, req.Difficulty)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, question)
}

// @Summary Next question
// @Description Draw the next question; reshuffles the category when the pass is exhausted
// @Tags game
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.QuestionResponse}
// @Router /api/v1/game/question [get]
func (h *GameHandler) CurrentQuestion(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	question, err := h.gameSvc.CurrentQuestion(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, question)
}

// @Summary Submit answer
// @Description Grade the current question; an empty answer is the time-up signal
// @Tags game
// @Accept json
// @Produce json
// @Security Bearer
// @Param answerRequest body dto.SubmitAnswerRequest true "Chosen answer"
// @Success 200 {object} shared.Response{data=dto.AnswerResultResponse}
// @Router /api/v1/game/answer [post]
func (h *GameHandler) SubmitAnswer(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	result := h.gameSvc.SubmitAnswer(userID, req.Answer)
	return shared.ResponseOK(c, result)
}

// @Summary Use hint
// @Description Buy the current question's hint for 100 points
// @Tags game
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.HintResponse}
// @Router /api/v1/game/hint [post]
func (h *GameHandler) UseHint(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	return shared.ResponseOK(c, h.gameSvc.UseHint(userID))
}

// @Summary Skip question
// @Description Skip at the cost of a life; refused on the last life
// @Tags game
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.SkipResponse}
// @Router /api/v1/game/skip [post]
func (h *GameHandler) SkipQuestion(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	return shared.ResponseOK(c, h.gameSvc.SkipQuestion(userID))
}

// @Summary Game stats
// @Description Read-only snapshot of the active session
// @Tags game
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.GameStatsResponse}
// @Router /api/v1/game/stats [get]
func (h *GameHandler) GameStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	stats, err := h.gameSvc.GameStats(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, stats)
}

// @Summary Quit game
// @Description Discard the active session; recorded answers are kept
// @Tags game
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response
// @Router /api/v1/game/quit [post]
func (h *GameHandler) QuitGame(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	h.gameSvc.QuitGame(userID)
	return shared.ResponseOK(c, nil)
}
