package main

import (
	"context"
	"fmt"
	"os"

	"github.com/grahms/rtlweaver"
	"github.com/grahms/rtlweaver/provider/anthropic"
	"github.com/grahms/rtlweaver/provider/echo"
	"github.com/grahms/rtlweaver/provider/gemini"
	"github.com/grahms/rtlweaver/provider/openai"
)

// newProviderRegistry wires the bundled adapters. The provider is resolved
// here, once, from explicit flags — the engine never re-reads ambient state.
func newProviderRegistry() *rtlweaver.ProviderRegistry {
	reg := rtlweaver.NewProviderRegistry()

	reg.Register("echo", func(cfg rtlweaver.ProviderConfig) (rtlweaver.Provider, error) {
		return echo.New(), nil
	})

	reg.Register("openai", func(cfg rtlweaver.ProviderConfig) (rtlweaver.Provider, error) {
		key, err := apiKey(cfg.APIKey, "OPENAI_API_KEY")
		if err != nil {
			return nil, err
		}
		c := openai.DefaultConfig(key)
		if cfg.Model != "" {
			c.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			c.BaseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			c.Timeout = cfg.Timeout
		}
		return openai.NewWithConfig(c), nil
	})

	reg.Register("anthropic", func(cfg rtlweaver.ProviderConfig) (rtlweaver.Provider, error) {
		key, err := apiKey(cfg.APIKey, "ANTHROPIC_API_KEY")
		if err != nil {
			return nil, err
		}
		c := anthropic.DefaultConfig(key)
		if cfg.Model != "" {
			c.Model = cfg.Model
		}
		if cfg.BaseURL != "" {
			c.BaseURL = cfg.BaseURL
		}
		if cfg.Timeout > 0 {
			c.Timeout = cfg.Timeout
		}
		return anthropic.NewWithConfig(c), nil
	})

	reg.Register("gemini", func(cfg rtlweaver.ProviderConfig) (rtlweaver.Provider, error) {
		key, err := apiKey(cfg.APIKey, "GEMINI_API_KEY", "GOOGLE_API_KEY")
		if err != nil {
			return nil, err
		}
		c := gemini.DefaultConfig(key)
		if cfg.Model != "" {
			c.Model = cfg.Model
		}
		return gemini.New(context.Background(), c)
	})

	return reg
}

func apiKey(explicit string, envVars ...string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, v := range envVars {
		if key := os.Getenv(v); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("missing API key: set %s", envVars[0])
}
