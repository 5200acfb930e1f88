package classifier

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"mailtriage/internal/models"
)

// ReviewThreshold is the confidence below which human review is always
// forced, whatever the model claimed.
const ReviewThreshold = 0.7

const (
	// holdingDraft is the fixed reply used when the judgment cannot be
	// parsed at all.
	holdingDraft = "Olá,\n\nObrigado pelo seu contato. Recebemos sua mensagem e ela será analisada por nossa equipe de suporte em breve.\n\nAtenciosamente,\nEquipe de Suporte"

	// genericDraft replaces an empty draft in an otherwise usable judgment.
	genericDraft = "Olá,\n\nObrigado pelo seu contato. Nossa equipe irá analisar seu caso.\n\nAtenciosamente,\nEquipe de Suporte"
)

// Policy is the single normalization point between a gateway's raw output
// and an Email record. Whatever comes in, the result is a taxonomy member
// with a non-empty draft and a review flag that respects ReviewThreshold.
type Policy struct {
	logger *zap.Logger
}

func NewPolicy(logger *zap.Logger) *Policy {
	return &Policy{logger: logger}
}

// defensiveResult is returned whenever the judgment is unusable as a whole.
func defensiveResult() models.ClassificationResult {
	return models.ClassificationResult{
		Category:            models.CategoryInconclusive,
		Confidence:          0,
		DraftReply:          holdingDraft,
		RequiresHumanReview: true,
	}
}

// Normalize turns a raw judgment into a valid ClassificationResult. It
// never fails: unusable input degrades to the defensive result and
// individual bad fields are substituted one by one.
func (p *Policy) Normalize(raw string) models.ClassificationResult {
	parsed := gjson.Parse(raw)
	if !gjson.Valid(raw) || !parsed.IsObject() {
		p.logger.Warn("unparsable judgment, using defensive result",
			zap.String("raw", raw))
		return defensiveResult()
	}

	category, err := models.ParseCategory(parsed.Get("classification").String())
	if errors.Is(err, models.ErrInvalidCategory) {
		p.logger.Warn("judgment carried an out-of-taxonomy label",
			zap.String("label", parsed.Get("classification").String()))
		category = models.CategoryInconclusive
	}

	confidence, ok := coerceConfidence(parsed.Get("confidence"))
	if !ok {
		p.logger.Warn("judgment confidence is not numeric, using defensive result",
			zap.String("confidence", parsed.Get("confidence").String()))
		return defensiveResult()
	}

	draft := strings.TrimSpace(parsed.Get("draft_reply").String())
	if draft == "" {
		draft = genericDraft
	}

	review := true
	if flag := parsed.Get("requires_human_review"); flag.IsBool() {
		review = flag.Bool()
	}

	// The one rule that must hold on every path: low confidence can only
	// increase caution.
	if confidence < ReviewThreshold {
		review = true
	}

	return models.ClassificationResult{
		Category:            category,
		Confidence:          confidence,
		DraftReply:          draft,
		RequiresHumanReview: review,
	}
}

// coerceConfidence accepts a JSON number or a numeric string; a missing
// value defaults to zero. Anything else is a coercion failure, fatal to the
// whole judgment.
func coerceConfidence(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Null:
		return 0, true
	case gjson.Number:
		return v.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
