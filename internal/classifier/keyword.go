package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mailtriage/internal/models"
)

// keywordRules is an ordered list of keyword groups; the first group with a
// substring match in the email body decides the category.
var keywordRules = []struct {
	keywords []string
	category models.Category
}{
	{[]string{"reclamação", "problema"}, models.CategoryNegativeFeedback},
	{[]string{"elogio", "gostei"}, models.CategoryPositiveFeedback},
	{[]string{"garantia", "defeito"}, models.CategoryWarranty},
	{[]string{"arrependi", "reembolso"}, models.CategoryRefund},
	{[]string{"dúvida", "pergunta"}, models.CategoryGeneralInquiry},
}

// KeywordGateway is the offline fallback variant: deterministic,
// case-insensitive keyword matching with no network call. It always reports
// confidence 0.7 and requests human review. Used when no OpenAI credential
// is configured, which keeps the service exercisable in tests and local
// setups.
type KeywordGateway struct{}

func NewKeywordGateway() *KeywordGateway {
	return &KeywordGateway{}
}

func (g *KeywordGateway) Classify(ctx context.Context, email *models.Email) (string, error) {
	body := strings.ToLower(email.Body)

	category := models.CategoryInconclusive
	for _, rule := range keywordRules {
		if containsAny(body, rule.keywords) {
			category = rule.category
			break
		}
	}

	draft := fmt.Sprintf("Olá,\n\nObrigado pelo contato. Sua mensagem foi classificada como: %s.\nNossa equipe irá analisar e responder em breve.\n\nAtenciosamente,\nEquipe de Suporte", category)

	judgment, err := json.Marshal(models.ClassificationResult{
		Category:            category,
		Confidence:          0.7,
		DraftReply:          draft,
		RequiresHumanReview: true,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling keyword judgment: %w", err)
	}

	return string(judgment), nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
