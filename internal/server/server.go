package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mailtriage/internal/classifier"
	"mailtriage/internal/models"
	"mailtriage/internal/service"
	"mailtriage/internal/storage"
)

// Server exposes the classification service over REST.
type Server struct {
	app     *fiber.App
	service *service.EmailService
	logger  *zap.Logger
}

func New(svc *service.EmailService, logger *zap.Logger) *Server {
	s := &Server{
		service: svc,
		logger:  logger,
	}

	s.app = fiber.New(fiber.Config{
		ErrorHandler: s.errorHandler,
	})

	s.app.Use(requestID())
	s.app.Use(s.requestLogger())

	s.app.Get("/health/ping", s.handlePing)

	v1 := s.app.Group("/api/v1")
	v1.Post("/emails/classify", s.handleClassify)
	v1.Get("/emails", s.handleList)
	v1.Get("/emails/:id", s.handleGet)
	v1.Put("/emails/:id", s.handleUpdate)

	return s
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app to handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// errorHandler maps service errors onto HTTP statuses in one place so the
// handlers can just return them.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	reqID, _ := c.Locals("request_id").(string)

	status := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		message = fiberErr.Message
	case errors.Is(err, storage.ErrNotFound):
		status = fiber.StatusNotFound
		message = "email not found"
	case errors.Is(err, models.ErrInvalidCategory):
		status = fiber.StatusBadRequest
		message = "invalid category"
	case errors.Is(err, classifier.ErrTransport):
		status = fiber.StatusBadGateway
		message = "classification provider unavailable"
	}

	if status >= fiber.StatusInternalServerError {
		s.logger.Error("Request failed",
			zap.Error(err),
			zap.String("request_id", reqID),
			zap.String("path", c.Path()))
	}

	return c.Status(status).JSON(errorResponse{Error: message, RequestID: reqID})
}

func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals("request_id", id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		s.logger.Info("Handled request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)))
		return err
	}
}
