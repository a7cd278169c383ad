package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"promo-insights-be/internal/dto"
	"promo-insights-be/internal/pkg/logger"
	"promo-insights-be/internal/pkg/serverutils"
	"promo-insights-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatbotController(chatService service.IChatService, log logger.ILogger) IChatbotController {
	return &chatbotController{
		chatService: chatService,
		logger:      log,
	}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("sessions", c.CreateSession)
	h.Get("sessions/:id/history", c.GetHistory)
	h.Delete("sessions/:id", c.DeleteSession)
	h.Post("sessions/:id/send", c.Send)
}

func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	session := c.chatService.CreateSession()
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", session))
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid session id")
	}

	history, err := c.chatService.GetHistory(sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get history", history))
}

func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid session id")
	}

	if err := c.chatService.DeleteSession(sessionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete session", nil))
}

// Send streams the backend's answer to the client as server-sent events.
// State checks happen before the stream opens so a busy session still gets
// a plain 409 instead of a half-open event stream.
func (c *chatbotController) Send(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequest("Invalid session id")
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid chat payload: %s", err.Error())
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	// Reserve before the stream opens: unknown or busy sessions get a plain
	// JSON error status, not a half-open event stream.
	if err := c.chatService.Begin(sessionId, req.Question); err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	question := req.Question
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		emit := func(event dto.StreamEvent) error {
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return err
			}
			return w.Flush()
		}

		if err := c.chatService.Send(context.Background(), sessionId, question, emit); err != nil {
			c.logger.Warn("ChatbotController", "Chat send ended with error", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
			// Best effort: the stream may already be broken.
			_ = emit(dto.StreamEvent{Type: "error", Message: err.Error()})
		}
	}))

	return nil
}
