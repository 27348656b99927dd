package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Ro706/Project-MARS/entity"
	"github.com/Ro706/Project-MARS/internal/config"
	"github.com/Ro706/Project-MARS/internal/lib/sl"
	"github.com/sashabaranov/go-openai"
)

// The completion API reports no alignment measure, so remote answers
// carry a fixed score.
const openaiRewardScore = 1.0

// OpenAIProvider answers queries through the OpenAI chat completion API
// instead of a local process.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

func NewOpenAIProvider(conf *config.Config, logger *slog.Logger) (*OpenAIProvider, error) {
	if conf.Rag.OpenAIKey == "" {
		return nil, fmt.Errorf("openai api key is required for the openai provider")
	}
	return &OpenAIProvider{
		client: openai.NewClient(conf.Rag.OpenAIKey),
		model:  conf.Rag.OpenAIModel,
		log:    logger.With(sl.Module("rag-openai")),
	}, nil
}

func (p *OpenAIProvider) Answer(ctx context.Context, query string) (*entity.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, &ParseError{Output: ""}
	}

	return &entity.Answer{
		Text:        strings.TrimSpace(resp.Choices[0].Message.Content),
		RewardScore: openaiRewardScore,
	}, nil
}
