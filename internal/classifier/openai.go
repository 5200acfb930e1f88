package classifier

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"mailtriage/internal/models"
)

// systemPromptV1 defines the taxonomy and the JSON shape the model must
// return. Bump the version when changing it so classifications stay
// comparable across deployments.
const systemPromptV1 = `Você é um assistente especializado em atendimento ao cliente de e-commerce.

Sua tarefa é:
1) Classificar o e-mail do cliente em UMA das seguintes categorias EXATAS:
   - FEEDBACK_NEGATIVO: reclamações, insatisfação, problemas com produtos ou atendimento.
   - FEEDBACK_POSITIVO: elogios, satisfação, comentários positivos.
   - GARANTIA: produto defeituoso, quebrado, parou de funcionar, solicitação de garantia.
   - ARREPENDIMENTO_REEMBOLSO: cliente se arrependeu da compra, quer devolver ou reembolso.
   - DUVIDAS_GERAIS: perguntas sobre uso do produto, entrega, prazo, processo de compra, etc.
   - INCONCLUSIVO: não é possível determinar claramente.

2) Gerar um rascunho de resposta adequado, educado e profissional, no mesmo
   idioma do e-mail, respondendo à situação do cliente.

3) Definir um nível de confiança (0 a 1) para a classificação.

4) Indicar se é necessário revisão humana (true/false):
   - true: caso o e-mail seja sensível, agressivo, muito confuso ou a confiança seja baixa (< 0.7).
   - false: caso seja um caso simples e a confiança seja alta (>= 0.7).

Responda SEMPRE em JSON puro, no formato:

{
  "classification": "FEEDBACK_NEGATIVO | FEEDBACK_POSITIVO | GARANTIA | ARREPENDIMENTO_REEMBOLSO | DUVIDAS_GERAIS | INCONCLUSIVO",
  "confidence": 0.0,
  "draft_reply": "texto do rascunho",
  "requires_human_review": true
}`

// OpenAIGateway classifies emails through the OpenAI chat completion API.
type OpenAIGateway struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

func NewOpenAIGateway(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIGateway {
	return &OpenAIGateway{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: float32(temperature),
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// Classify sends the email to the model and returns its textual output
// verbatim. Parsing and validation belong to the policy engine.
func (g *OpenAIGateway) Classify(ctx context.Context, email *models.Email) (string, error) {
	userContent := fmt.Sprintf("E-mail do cliente:\n\nRemetente: %s\nAssunto: %s\nCorpo:\n%s",
		email.FromEmail, email.Subject, email.Body)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPromptV1},
			{Role: openai.ChatMessageRoleUser, Content: userContent},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		g.logger.Error("OpenAI request failed",
			zap.Error(err),
			zap.String("model", g.model))
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrTransport)
	}

	return resp.Choices[0].Message.Content, nil
}
