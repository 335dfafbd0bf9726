package controller

import (
	"io"

	"ai-recruiting-be/internal/dto"
	"ai-recruiting-be/internal/pkg/serverutils"
	"ai-recruiting-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICandidateController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UploadDocument(ctx *fiber.Ctx) error
	SemanticSearch(ctx *fiber.Ctx) error
}

type candidateController struct {
	candidateService service.ICandidateService
}

func NewCandidateController(candidateService service.ICandidateService) ICandidateController {
	return &candidateController{
		candidateService: candidateService,
	}
}

func (c *candidateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/candidate/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("semantic-search", c.SemanticSearch)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Post(":id/document", c.UploadDocument)
}

func (c *candidateController) Create(ctx *fiber.Ctx) error {
	orgIdStr := ctx.Locals("org_id").(string)
	orgId, _ := uuid.Parse(orgIdStr)

	var req dto.CreateCandidateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.candidateService.Create(ctx.Context(), orgId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create candidate", res))
}

func (c *candidateController) Show(ctx *fiber.Ctx) error {
	orgIdStr := ctx.Locals("org_id").(string)
	orgId, _ := uuid.Parse(orgIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	res, err := c.candidateService.Show(ctx.Context(), orgId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show candidate", res))
}

func (c *candidateController) UploadDocument(ctx *fiber.Ctx) error {
	orgIdStr := ctx.Locals("org_id").(string)
	orgId, _ := uuid.Parse(orgIdStr)
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	idParam := ctx.Params("id")
	id, _ := uuid.Parse(idParam)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing 'file' form field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	res, err := c.candidateService.UploadDocument(ctx.Context(), orgId, userId, id, data, mimeType)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload document", res))
}

func (c *candidateController) SemanticSearch(ctx *fiber.Ctx) error {
	orgIdStr := ctx.Locals("org_id").(string)
	orgId, _ := uuid.Parse(orgIdStr)

	query := ctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing 'q' query param")
	}

	res, err := c.candidateService.SemanticSearch(ctx.Context(), orgId, query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success semantic search", res))
}
