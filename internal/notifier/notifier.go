package notifier

import "mailtriage/internal/models"

// Notifier alerts the support team about classifications that need a human
// look. Delivery failures are the caller's to log; they never fail the
// classification itself.
type Notifier interface {
	NotifyReview(email *models.Email) error
}

// NoopNotifier is used when no notification channel is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) NotifyReview(email *models.Email) error {
	return nil
}
