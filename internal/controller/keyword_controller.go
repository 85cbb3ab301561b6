package controller

import (
	"seo-assistant-be/internal/dto"
	"seo-assistant-be/internal/pkg/serverutils"
	"seo-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKeywordController interface {
	RegisterRoutes(r fiber.Router)
	Track(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Deactivate(ctx *fiber.Ctx) error
}

type keywordController struct {
	service service.IKeywordService
}

func NewKeywordController(service service.IKeywordService) IKeywordController {
	return &keywordController{service: service}
}

func (c *keywordController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/keyword/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("track", c.Track)
	h.Get("project/:projectId", c.GetAll)
	h.Put(":id/deactivate", c.Deactivate)
}

func (c *keywordController) Track(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.TrackKeywordsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Track(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success track keywords", res))
}

func (c *keywordController) GetAll(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	projectIdParam := ctx.Params("projectId")
	projectId, err := uuid.Parse(projectIdParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
	}

	res, err := c.service.GetAll(ctx.Context(), userId, projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get keywords", res))
}

func (c *keywordController) Deactivate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid keyword id")
	}

	res, err := c.service.Deactivate(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success deactivate keyword", res))
}
