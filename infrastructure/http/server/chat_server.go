package server

import (
	"chat-room/domain"
	"chat-room/errors"
	"chat-room/observability"
	"chat-room/services"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/lo"
)

const userHeader = "User"

type ChatServer struct {
	log                *slog.Logger
	participantService services.IParticipantService
	messageService     services.IMessageService
	metrics            *observability.Metrics
}

func NewChatServer(
	log *slog.Logger,
	participantService services.IParticipantService,
	messageService services.IMessageService,
	metrics *observability.Metrics,
) *ChatServer {
	return &ChatServer{
		log:                log,
		participantService: participantService,
		messageService:     messageService,
		metrics:            metrics,
	}
}

type participantRequest struct {
	Name string `json:"name"`
}

type messageRequest struct {
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
}

type participantResponse struct {
	Name       string `json:"name"`
	LastStatus int64  `json:"lastStatus"`
}

type messageResponse struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to,omitempty"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// App builds the fiber application serving the chat room API.
func (s *ChatServer) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chat-room",
		ErrorHandler:          s.handleError,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(s.logRequest)

	app.Post("/participants", s.RegisterParticipant)
	app.Get("/participants", s.ListParticipants)
	app.Post("/messages", s.PostMessage)
	app.Get("/messages", s.ListMessages)
	app.Get("/messages/search", s.SearchMessages)
	app.Post("/status", s.Heartbeat)
	app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	return app
}

func (s *ChatServer) RegisterParticipant(c *fiber.Ctx) error {
	var body participantRequest
	if err := c.BodyParser(&body); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidParticipant, err)
	}
	if _, err := s.participantService.Register(body.Name); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (s *ChatServer) ListParticipants(c *fiber.Ctx) error {
	participants, err := s.participantService.List()
	if err != nil {
		return err
	}
	return c.JSON(toParticipantResponse(participants))
}

func (s *ChatServer) PostMessage(c *fiber.Ctx) error {
	var body messageRequest
	if err := c.BodyParser(&body); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidMessage, err)
	}
	if _, err := s.messageService.Post(c.Get(userHeader), body.To, body.Text, body.Type); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusCreated)
}

func (s *ChatServer) ListMessages(c *fiber.Ctx) error {
	limit, err := limitFromQuery(c)
	if err != nil {
		return err
	}
	messages, err := s.messageService.List(c.Get(userHeader), limit)
	if err != nil {
		return err
	}
	return c.JSON(toMessageResponse(messages))
}

func (s *ChatServer) SearchMessages(c *fiber.Ctx) error {
	limit, err := limitFromQuery(c)
	if err != nil {
		return err
	}
	messages, err := s.messageService.Search(c.UserContext(), c.Get(userHeader), c.Query("q"), limit)
	if err != nil {
		return err
	}
	return c.JSON(toMessageResponse(messages))
}

func (s *ChatServer) Heartbeat(c *fiber.Ctx) error {
	user := c.Get(userHeader)
	if user == "" {
		return errors.ErrParticipantNotFound
	}
	if err := s.participantService.Heartbeat(user); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusOK)
}

// limitFromQuery returns nil when the limit parameter is absent.
// A present but empty limit is invalid.
func limitFromQuery(c *fiber.Ctx) (*int, error) {
	args := c.Context().QueryArgs()
	if !args.Has("limit") {
		return nil, nil
	}
	return services.ParseLimit(string(args.Peek("limit")))
}

func toParticipantResponse(participants []domain.Participant) []participantResponse {
	return lo.Map(participants, func(item domain.Participant, _ int) participantResponse {
		return participantResponse{
			Name:       item.Name,
			LastStatus: item.LastStatus.UnixMilli(),
		}
	})
}

func toMessageResponse(messages []domain.Message) []messageResponse {
	return lo.Map(messages, func(item domain.Message, _ int) messageResponse {
		return messageResponse{
			ID:   item.ID.String(),
			From: item.From,
			To:   item.To,
			Text: item.Text,
			Type: string(item.Type),
			Time: item.Time,
		}
	})
}
