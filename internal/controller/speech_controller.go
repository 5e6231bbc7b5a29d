package controller

import (
	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/dto"
	"ai-mediagen-be/internal/pkg/serverutils"
	"ai-mediagen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISpeechController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
}

type speechController struct {
	generation service.IGenerationService
	media      service.IMediaService
	auth       fiber.Handler
}

func NewSpeechController(generation service.IGenerationService, media service.IMediaService, auth fiber.Handler) ISpeechController {
	return &speechController{
		generation: generation,
		media:      media,
		auth:       auth,
	}
}

func (c *speechController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/speech/v1")
	h.Use(c.auth)
	h.Post("/generate", c.Generate)
	h.Get("", c.GetAll)
	artifactRoutes{kind: constant.ArtifactKindSpeech, media: c.media}.register(h)
}

func (c *speechController) Generate(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateSpeechRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generation.GenerateSpeech(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate speech", res))
}

func (c *speechController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	req, err := parseListRequest(ctx)
	if err != nil {
		return err
	}

	items, total, err := c.media.ListSpeeches(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all speech", &dto.ArtifactPage[*dto.GeneratedSpeechResponse]{
		Items:  items,
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	}))
}
