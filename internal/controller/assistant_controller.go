package controller

import (
	"ai-recruiting-be/internal/dto"
	"ai-recruiting-be/internal/pkg/serverutils"
	"ai-recruiting-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	UpdateSummary(ctx *fiber.Ctx) error
	SaveMemory(ctx *fiber.Ctx) error
	SearchMemories(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	memoryService    service.IMemoryService
}

func NewAssistantController(assistantService service.IAssistantService, memoryService service.IMemoryService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		memoryService:    memoryService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("chat", c.Chat)
	h.Get("session/:id", c.ShowSession)
	h.Put("session/:id/summary", c.UpdateSummary)
	h.Post("memory", c.SaveMemory)
	h.Get("memory/search", c.SearchMemories)
}

func callerIds(ctx *fiber.Ctx) (uuid.UUID, uuid.UUID) {
	orgIdStr, _ := ctx.Locals("org_id").(string)
	orgId, _ := uuid.Parse(orgIdStr)
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return orgId, userId
}

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	orgId, userId := callerIds(ctx)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.Chat(ctx.Context(), orgId, userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *assistantController) ShowSession(ctx *fiber.Ctx) error {
	orgId, userId := callerIds(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	withMessages := ctx.QueryBool("with_messages", false)

	res, err := c.memoryService.ShowSession(ctx.Context(), orgId, userId, id, withMessages)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *assistantController) UpdateSummary(ctx *fiber.Ctx) error {
	orgId, userId := callerIds(ctx)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	var req dto.UpdateSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.SessionId = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.memoryService.UpdateSessionSummary(ctx.Context(), orgId, userId, id, req.Title, req.Summary); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update summary", nil))
}

func (c *assistantController) SaveMemory(ctx *fiber.Ctx) error {
	orgId, userId := callerIds(ctx)

	var req dto.SaveMemoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.memoryService.SaveContextMemory(ctx.Context(), orgId, userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save memory", res))
}

func (c *assistantController) SearchMemories(ctx *fiber.Ctx) error {
	orgId, userId := callerIds(ctx)

	query := ctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing 'q' query param")
	}
	limit := ctx.QueryInt("limit", 5)

	res, err := c.memoryService.SearchMemories(ctx.Context(), orgId, userId, query, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search memories", res))
}
