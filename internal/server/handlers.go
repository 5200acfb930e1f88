package server

import (
	"net/mail"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mailtriage/internal/models"
	"mailtriage/internal/service"
)

type classifyRequest struct {
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type updateRequest struct {
	Category            *string  `json:"category"`
	Confidence          *float64 `json:"confidence"`
	DraftReply          *string  `json:"draft_reply"`
	RequiresHumanReview *bool    `json:"requires_human_review"`
}

func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ping": "pong", "status": "ok"})
}

func (s *Server) handleClassify(c *fiber.Ctx) error {
	var req classifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	if _, err := mail.ParseAddress(req.FromEmail); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "from_email must be a valid email address")
	}
	if strings.TrimSpace(req.Subject) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "subject is required")
	}
	if strings.TrimSpace(req.Body) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "body is required")
	}

	email, err := s.service.ClassifyFromRequest(c.Context(), req.FromEmail, req.Subject, req.Body)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(email)
}

func (s *Server) handleList(c *fiber.Ctx) error {
	emails, err := s.service.List(c.Context())
	if err != nil {
		return err
	}
	if emails == nil {
		emails = []*models.Email{}
	}
	return c.JSON(emails)
}

func (s *Server) handleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	email, err := s.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(email)
}

func (s *Server) handleUpdate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}

	email, err := s.service.Update(c.Context(), id, service.EmailUpdate{
		Category:            req.Category,
		Confidence:          req.Confidence,
		DraftReply:          req.DraftReply,
		RequiresHumanReview: req.RequiresHumanReview,
	})
	if err != nil {
		return err
	}
	return c.JSON(email)
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}
