package openai

import (
	"SecondSonsNLU/pkg/nlp"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
)

type IChatGPT interface {
	nlp.IIntentClassifier
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT() (IChatGPT, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}

	model := os.Getenv("OPENAI_CHAT_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}

	return &chatGPTService{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (c *chatGPTService) Classify(ctx context.Context, text string) (*nlp.IntentResult, error) {
	startTime := time.Now()

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: "You are an intent classifier. IMPORTANT: Return ONLY valid JSON, nothing else.",
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: nlp.IntentPrompt(text),
		},
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0,
			MaxTokens:   60,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from ChatGPT")
	}

	result, err := nlp.ParseIntentReply(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	result.Source = "openai"
	result.ProcessingTime = time.Since(startTime).String()
	return result, nil
}
