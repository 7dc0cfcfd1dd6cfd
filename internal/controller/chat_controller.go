package controller

import (
	"errors"

	"saedam-be/internal/dto"
	"saedam-be/internal/pkg/serverutils"
	"saedam-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Send)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrFairyUnavailable) {
			return fiber.NewError(fiber.StatusBadGateway, "fairy is unavailable, please retry")
		}
		return err
	}

	// The companion client consumes the progression payload as-is.
	return ctx.JSON(res)
}
