package controller

import (
	"ai-mediagen-be/internal/constant"
	"ai-mediagen-be/internal/dto"
	"ai-mediagen-be/internal/pkg/serverutils"
	"ai-mediagen-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// artifactRoutes holds the save-state endpoints shared by every artifact kind.
type artifactRoutes struct {
	kind  constant.ArtifactKind
	media service.IMediaService
}

func (a artifactRoutes) register(h fiber.Router) {
	h.Patch("/:id/save", a.Save)
	h.Patch("/:id/unsave", a.Unsave)
}

func (a artifactRoutes) Save(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := a.media.SaveArtifact(ctx.UserContext(), a.kind, id, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save "+string(a.kind), res))
}

func (a artifactRoutes) Unsave(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := a.media.UnsaveArtifact(ctx.UserContext(), a.kind, id, userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove "+string(a.kind), res))
}

func parseListRequest(ctx *fiber.Ctx) (*dto.ListArtifactsRequest, error) {
	var req dto.ListArtifactsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.Limit == 0 {
		req.Limit = service.DefaultListLimit
	}
	return &req, nil
}
