package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

func (t *Translator) openaiTranslate(ctx context.Context, text string) (string, error) {
	client := openai.NewClient(t.openaiKey)

	prompt := fmt.Sprintf(`Translate the following text to %s.
Keep the meaning and tone of the original.
Translate only the text itself, without additional comments.

Text to translate:
%s`, languageName(t.target), text)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxCompletionTokens: 2000,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
