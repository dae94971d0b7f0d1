package controller

import (
	"ai-visionboard-be/internal/pkg/apperror"
	"ai-visionboard-be/internal/pkg/serverutils"
	"ai-visionboard-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBoardController interface {
	RegisterRoutes(r fiber.Router)
	GetQueries(ctx *fiber.Ctx) error
}

type boardController struct {
	service service.IBoardService
}

func NewBoardController(service service.IBoardService) IBoardController {
	return &boardController{service: service}
}

func (c *boardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/board/v1")
	h.Get(":token/queries", c.GetQueries)
}

func (c *boardController) GetQueries(ctx *fiber.Ctx) error {
	token := ctx.Params("token")
	if token == "" {
		return apperror.Validation("board token is required")
	}

	res, err := c.service.GetQueries(ctx.Context(), token)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get board queries", res))
}
