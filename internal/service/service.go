package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mailtriage/internal/classifier"
	"mailtriage/internal/models"
	"mailtriage/internal/notifier"
	"mailtriage/internal/storage"
)

// EmailService composes the gateway, the policy engine, storage and the
// review notifier into the classification workflow.
type EmailService struct {
	gateway  classifier.Gateway
	policy   *classifier.Policy
	storage  storage.Storage
	notifier notifier.Notifier
	logger   *zap.Logger
}

func New(gateway classifier.Gateway, policy *classifier.Policy, store storage.Storage, notify notifier.Notifier, logger *zap.Logger) *EmailService {
	return &EmailService{
		gateway:  gateway,
		policy:   policy,
		storage:  store,
		notifier: notify,
		logger:   logger,
	}
}

// ClassifyFromRequest runs one classification end to end: provisional
// record, one gateway call, policy normalization, one save. Transport
// failures propagate; malformed model output never does.
func (s *EmailService) ClassifyFromRequest(ctx context.Context, fromEmail, subject, body string) (*models.Email, error) {
	email := models.NewEmail(fromEmail, subject, body)

	raw, err := s.gateway.Classify(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("classifying email: %w", err)
	}

	email.ApplyResult(s.policy.Normalize(raw))

	if err := s.storage.Save(ctx, email); err != nil {
		return nil, fmt.Errorf("saving email: %w", err)
	}

	s.logger.Info("Classified email",
		zap.Int64("id", email.ID),
		zap.String("category", string(email.Category)),
		zap.Float64("confidence", email.Confidence),
		zap.Bool("requires_human_review", email.RequiresHumanReview))

	if email.RequiresHumanReview {
		if err := s.notifier.NotifyReview(email); err != nil {
			s.logger.Error("Failed to notify review channel",
				zap.Error(err),
				zap.Int64("id", email.ID))
		}
	}

	return email, nil
}

// EmailUpdate carries the optional field overrides of an update request;
// nil means "leave unchanged".
type EmailUpdate struct {
	Category            *string
	Confidence          *float64
	DraftReply          *string
	RequiresHumanReview *bool
}

// Update applies a partial override to an existing record. It is an
// administrative operation and deliberately does not re-run the review
// threshold rule: an operator setting requires_human_review=false on a
// low-confidence record is taken at their word.
func (s *EmailService) Update(ctx context.Context, id int64, update EmailUpdate) (*models.Email, error) {
	var category models.Category
	if update.Category != nil {
		parsed, err := models.ParseCategory(*update.Category)
		if err != nil {
			return nil, err
		}
		category = parsed
	}

	email, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Category != nil {
		email.Category = category
	}
	if update.Confidence != nil {
		email.Confidence = *update.Confidence
	}
	if update.DraftReply != nil {
		email.DraftReply = *update.DraftReply
	}
	if update.RequiresHumanReview != nil {
		email.RequiresHumanReview = *update.RequiresHumanReview
	}

	if err := s.storage.Save(ctx, email); err != nil {
		return nil, fmt.Errorf("saving email: %w", err)
	}

	s.logger.Info("Updated email",
		zap.Int64("id", email.ID),
		zap.String("category", string(email.Category)))

	return email, nil
}

func (s *EmailService) Get(ctx context.Context, id int64) (*models.Email, error) {
	return s.storage.Get(ctx, id)
}

func (s *EmailService) List(ctx context.Context) ([]*models.Email, error) {
	return s.storage.List(ctx)
}
