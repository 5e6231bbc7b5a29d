package controller

import (
	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/dto"
	"ai-mediagen-be/internal/pkg/serverutils"
	"ai-mediagen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IImageController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
}

type imageController struct {
	generation service.IGenerationService
	media      service.IMediaService
	auth       fiber.Handler
}

func NewImageController(generation service.IGenerationService, media service.IMediaService, auth fiber.Handler) IImageController {
	return &imageController{
		generation: generation,
		media:      media,
		auth:       auth,
	}
}

func (c *imageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/image/v1")
	h.Use(c.auth)
	h.Post("/generate", c.Generate)
	h.Get("", c.GetAll)
	artifactRoutes{kind: constant.ArtifactKindImage, media: c.media}.register(h)
}

func (c *imageController) Generate(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generation.GenerateImage(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate image", res))
}

func (c *imageController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	req, err := parseListRequest(ctx)
	if err != nil {
		return err
	}

	items, total, err := c.media.ListImages(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all image", &dto.ArtifactPage[*dto.GeneratedImageResponse]{
		Items:  items,
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	}))
}
