package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// openaiCaptioner implements Captioner using the OpenAI vision API.
type openaiCaptioner struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI captioner. If apiKey is empty, OPENAI_API_KEY
// is used.
func NewOpenAI(apiKey, model string) Captioner {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if model == "" {
		model = "gpt-4o"
	}
	return &openaiCaptioner{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *openaiCaptioner) Caption(ctx context.Context, image []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: 120,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: captionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai caption: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai caption: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
