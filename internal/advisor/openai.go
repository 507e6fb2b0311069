package advisor

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const maxTokens = 1024

const systemPrompt = "You are a legal assistant specializing in Abu Dhabi Global Market (ADGM) " +
	"corporate compliance. Answer concisely and cite the relevant ADGM regulation where possible. " +
	"If the question is outside ADGM corporate law, say so."

// OpenAIClient implements LLMClient on top of the OpenAI chat API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{client: openai.NewClient(apiKey), model: model}
}

func (c *OpenAIClient) Answer(ctx context.Context, question, docContext string) (string, error) {
	user := question
	if docContext != "" {
		user = fmt.Sprintf("Document context:\n%s\n\nQuestion: %s", docContext, question)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
