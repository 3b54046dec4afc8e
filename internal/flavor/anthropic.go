package flavor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultTimeout = 10 * time.Second

// Anthropic generates backstories with the Anthropic Messages API.
type Anthropic struct {
	client  anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

// NewAnthropic builds a generator calling the given model. A zero
// timeout falls back to 10s per call.
func NewAnthropic(apiKey, model string, timeout time.Duration) *Anthropic {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Anthropic{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   anthropic.Model(model),
		timeout: timeout,
	}
}

func (a *Anthropic) Backstory(ctx context.Context, s Subject) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Write a two-sentence backstory for a cosmic RPG hero. Name: %s %s. Class: %s. Element: %s. Rarity: %s. Origin: %s. Respond with the backstory only.",
		s.Name, s.Title, s.Class, s.Element, s.Rarity, s.Origin,
	)

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 300,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("flavor: backstory request: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		b.WriteString(block.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("flavor: model returned no text")
	}
	return text, nil
}
