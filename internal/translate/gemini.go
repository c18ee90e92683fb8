package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type geminiClient struct {
	client *genai.Client
}

func newGeminiClient(ctx context.Context, apiKey string) (*geminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client}, nil
}

func (c *geminiClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

func (c *geminiClient) Translate(ctx context.Context, text, target string) (string, error) {
	model := c.client.GenerativeModel("gemini-1.5-flash")

	prompt := fmt.Sprintf(`Translate the following text to %s.
Keep the meaning of the original. Do not translate proper names.
Reply with the translation only, no comments or notes.

Text:
%s`, languageName(target), text)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}

	return strings.TrimSpace(b.String()), nil
}
