package models

import "time"

// Email represents one classified support email. ID is zero until the
// record has been saved.
type Email struct {
	ID                  int64     `json:"id"`
	FromEmail           string    `json:"from_email"`
	Subject             string    `json:"subject"`
	Body                string    `json:"body"`
	Category            Category  `json:"category"`
	Confidence          float64   `json:"confidence"`
	DraftReply          string    `json:"draft_reply"`
	RequiresHumanReview bool      `json:"requires_human_review"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// NewEmail builds a provisional record with the safe defaults used before
// any classification has run.
func NewEmail(fromEmail, subject, body string) *Email {
	return &Email{
		FromEmail:           fromEmail,
		Subject:             subject,
		Body:                body,
		Category:            CategoryInconclusive,
		Confidence:          0,
		DraftReply:          "",
		RequiresHumanReview: true,
	}
}

// ApplyResult overwrites the classification fields with a policy-validated
// result.
func (e *Email) ApplyResult(r ClassificationResult) {
	e.Category = r.Category
	e.Confidence = r.Confidence
	e.DraftReply = r.DraftReply
	e.RequiresHumanReview = r.RequiresHumanReview
}
