package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"stock-alert-cockpit/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrDisabled is returned when no LLM client is configured.
var ErrDisabled = errors.New("briefings disabled: OPENAI_API_KEY not set")

const defaultMaxAlerts = 25

// LLMClient abstracts the OpenAI chat completions API for testability.
type LLMClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// QuoteQuerier provides current quotes for the briefing context. Optional.
type QuoteQuerier interface {
	GetQuote(ctx context.Context, ticker string) (*domain.Quote, error)
}

// BriefingService summarises a ranked alert list for a trader.
type BriefingService struct {
	tracer    trace.Tracer
	llm       LLMClient
	quotes    QuoteQuerier
	model     string
	maxAlerts int
}

func NewBriefingService(tracer trace.Tracer, llm LLMClient, quotes QuoteQuerier, model string, maxAlerts int) *BriefingService {
	if maxAlerts <= 0 {
		maxAlerts = defaultMaxAlerts
	}
	return &BriefingService{
		tracer:    tracer,
		llm:       llm,
		quotes:    quotes,
		model:     model,
		maxAlerts: maxAlerts,
	}
}

// Brief asks the model for a short briefing over the top alerts. Quote lookups
// are best-effort.
func (s *BriefingService) Brief(ctx context.Context, watchlist []domain.Ticker, alerts []domain.AlertRecord) (string, error) {
	if s == nil || s.llm == nil {
		return "", ErrDisabled
	}
	ctx, span := s.tracer.Start(ctx, "advisor.brief")
	defer span.End()
	span.SetAttributes(
		attribute.Int("watchlist.size", len(watchlist)),
		attribute.Int("alerts.count", len(alerts)),
	)

	quotes := s.gatherQuotes(ctx, watchlist)
	alertContext := FormatAlertContext(alerts, quotes, s.maxAlerts)

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(BuildSystemPrompt()),
		openai.UserMessage(alertContext),
	}

	reply, err := s.callLLM(ctx, messages)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("briefing unavailable: %w", err)
	}
	return reply, nil
}

func (s *BriefingService) gatherQuotes(ctx context.Context, watchlist []domain.Ticker) []*domain.Quote {
	if s.quotes == nil {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "advisor.gather-quotes")
	defer span.End()

	var out []*domain.Quote
	for _, t := range watchlist {
		q, err := s.quotes.GetQuote(ctx, t)
		if err != nil {
			log.Printf("briefing quote for %s unavailable: %v", t, err)
			continue
		}
		out = append(out, q)
	}
	return out
}

func (s *BriefingService) callLLM(
	ctx context.Context,
	messages []openai.ChatCompletionMessageParamUnion,
) (string, error) {
	ctx, span := s.tracer.Start(ctx, "advisor.llm-call")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", s.model),
		attribute.Int("llm.message_count", len(messages)),
	)

	completion, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("no choices in LLM response")
	}

	reply := completion.Choices[0].Message.Content
	span.SetAttributes(attribute.Int("llm.reply_length", len(reply)))
	return reply, nil
}

// openaiClient wraps the official SDK's chat completions service.
type openaiClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) LLMClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openaiClient{client: client}
}

func (c *openaiClient) CreateChatCompletion(
	ctx context.Context,
	params openai.ChatCompletionNewParams,
) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
