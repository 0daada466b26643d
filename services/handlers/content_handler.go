package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Caisio-Cloud/popmath-game/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
	flavorSvc  FlavorServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface, flavorSvc FlavorServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
		flavorSvc:  flavorSvc,
	}
}

// @Summary List categories
// @Tags content
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.CategoryCollectionResponse}
// @Router /api/v1/categories [get]
func (h *ContentHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.contentSvc.GetCategories()
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, categories)
}

// @Summary Random meme
// @Tags flavor
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.MemeResponse}
// @Router /api/v1/flavor/meme [get]
func (h *ContentHandler) RandomMeme(c *fiber.Ctx) error {
	return shared.ResponseOK(c, h.flavorSvc.RandomMeme())
}

// @Summary Story
// @Description Intro lines and character dialog pools
// @Tags flavor
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response{data=dto.StoryResponse}
// @Router /api/v1/flavor/story [get]
func (h *ContentHandler) Story(c *fiber.Ctx) error {
	return shared.ResponseOK(c, h.flavorSvc.Story())
}
