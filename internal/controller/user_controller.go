package controller

import (
	"saedam-be/internal/pkg/serverutils"
	"saedam-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
	ClearMessages(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/users")
	h.Get(":id", c.Show)
	h.Get(":id/messages", c.Messages)
	h.Delete(":id/messages", c.ClearMessages)
}

func (c *userController) Show(ctx *fiber.Ctx) error {
	anonymousID := ctx.Params("id")
	if err := serverutils.ValidateAnonymousID(anonymousID); err != nil {
		return err
	}

	res, err := c.userService.GetUser(ctx.Context(), anonymousID)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	return ctx.JSON(res)
}

func (c *userController) Messages(ctx *fiber.Ctx) error {
	anonymousID := ctx.Params("id")
	if err := serverutils.ValidateAnonymousID(anonymousID); err != nil {
		return err
	}

	res, err := c.userService.GetMessages(ctx.Context(), anonymousID)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{"messages": res})
}

func (c *userController) ClearMessages(ctx *fiber.Ctx) error {
	anonymousID := ctx.Params("id")
	if err := serverutils.ValidateAnonymousID(anonymousID); err != nil {
		return err
	}

	if err := c.userService.ClearMessages(ctx.Context(), anonymousID); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}
