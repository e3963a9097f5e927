package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"auroracast/internal/logger"
	"auroracast/internal/models"
)

// ForecastClient generates the forecast discussion through the OpenAI API
type ForecastClient struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewForecastClient creates a forecast client. An empty API key returns nil,
// callers fall back to the deterministic discussion.
func NewForecastClient(apiKey, model string) *ForecastClient {
	if apiKey == "" {
		return nil
	}
	return &ForecastClient{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger.Global().WithComponent("llm"),
	}
}

// GenerateDiscussion produces a markdown forecast discussion for the snapshot
func (c *ForecastClient) GenerateDiscussion(ctx context.Context, snap *models.Snapshot) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("forecast client not configured")
	}

	c.log.Infof("Generating forecast discussion for %s", snap.Timestamp.Format("2006-01-02 15:04"))

	prompt, err := c.BuildPrompt(snap)
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		reqCtx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   4000,
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	discussion := resp.Choices[0].Message.Content
	c.log.Debugf("Generated discussion with %d characters", len(discussion))
	return discussion, nil
}

// BuildPrompt constructs the user prompt from the classified snapshot
func (c *ForecastClient) BuildPrompt(snap *models.Snapshot) (string, error) {
	var sb strings.Builder

	sb.WriteString("Write the forecast discussion for the following space weather snapshot.\n\n")

	conditions, err := json.MarshalIndent(snap.Conditions, "", "  ")
	if err != nil {
		return "", err
	}
	sb.WriteString("## Current conditions (classified)\n```json\n")
	sb.Write(conditions)
	sb.WriteString("\n```\n\n")

	if snap.Summary != nil {
		summary, err := json.MarshalIndent(snap.Summary, "", "  ")
		if err != nil {
			return "", err
		}
		sb.WriteString("## Past 24 hours\n```json\n")
		sb.Write(summary)
		sb.WriteString("\n```\n\n")
	}

	if len(snap.CMEs) > 0 {
		cmes, err := json.MarshalIndent(snap.CMEs, "", "  ")
		if err != nil {
			return "", err
		}
		sb.WriteString("## Tracked CMEs\n```json\n")
		sb.Write(cmes)
		sb.WriteString("\n```\n\n")
	}

	if len(snap.Events) > 0 {
		sb.WriteString("## Recent SIDC bulletins\n")
		for _, ev := range snap.Events {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", ev.Severity, ev.Description))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

const systemPrompt = `You are a space weather forecaster writing for aurora photographers and the general public. Given classified solar wind, X-ray, proton, flare and CME data, write a concise forecast discussion in markdown. Cover: overall activity level, solar wind and IMF Bz state, aurora visibility outlook by latitude, any Earth-directed CMEs with their estimated arrival windows, and notable events from the past 24 hours. Be factual and avoid hype. Do not invent data that is not in the input.`
