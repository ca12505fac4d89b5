package vision

import (
	"context"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// claudeCaptioner implements Captioner using Anthropic Claude vision.
type claudeCaptioner struct {
	client *anthropic.Client
	model  string
}

// NewClaude creates a Claude captioner. If apiKey is empty,
// ANTHROPIC_API_KEY is used.
func NewClaude(apiKey, model string) Captioner {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if model == "" {
		model = "claude-sonnet-4-6"
	}
	return &claudeCaptioner{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}
}

func (c *claudeCaptioner) Caption(ctx context.Context, image []byte, mimeType string) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		MaxTokens: 120,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(
						anthropic.NewMessageContentImageSource("base64", mimeType, image)),
					anthropic.NewTextMessageContent(captionPrompt),
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude caption: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("claude caption: empty response")
	}

	return strings.TrimSpace(resp.Content[0].GetText()), nil
}
