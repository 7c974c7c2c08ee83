package controller

import (
	"cancelflow-be/internal/dto"
	"cancelflow-be/internal/pkg/serverutils"
	"cancelflow-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICancellationController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type cancellationController struct {
	service service.ICancellationService
}

func NewCancellationController(service service.ICancellationService) ICancellationController {
	return &cancellationController{service: service}
}

func (c *cancellationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/cancellations")
	h.Post("/", c.Create)
	h.Put("/", c.Update)
	h.Get("/:id", c.Get)
}

func (c *cancellationController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCancellationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *cancellationController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateCancellationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *cancellationController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
