package classifier

import (
	"context"
	"errors"

	"mailtriage/internal/models"
)

// ErrTransport marks a gateway call that could not complete (network, auth,
// provider-side failure). Malformed model output is NOT a transport error;
// it comes back as a raw judgment for the policy engine to normalize.
var ErrTransport = errors.New("classifier: transport failure")

// Gateway produces a raw, untrusted judgment for an email. The judgment is
// expected to be a JSON object with classification, confidence, draft_reply
// and requires_human_review keys, but nothing about its shape is guaranteed.
type Gateway interface {
	Classify(ctx context.Context, email *models.Email) (string, error)
}
