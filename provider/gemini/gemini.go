// Package gemini adapts Google's Gemini API, via the genai SDK, to the
// engine's Provider contract.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		Model:       "gemini-2.5-flash",
		Temperature: 0.1,
	}
}

// Client implements the engine's Provider contract.
type Client struct {
	client *genai.Client
	cfg    Config
}

// New dials the Gemini API. The context covers client construction only;
// each Complete call carries its own.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key not configured")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultConfig(cfg.APIKey).Model
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Client{client: client, cfg: cfg}, nil
}

// Complete issues a single GenerateContent call and returns the response
// text.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.cfg.Temperature),
	}
	if system != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(user), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: response carried no text")
	}
	return text, nil
}
