package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"coldreach/internal/config"
)

// ErrNoProvider is returned when auto-selection finds no usable API key.
var ErrNoProvider = errors.New("no AI provider. Set OPENAI_API_KEY or ANTHROPIC_API_KEY")

// Provider generates text from a prompt. Implementations send exactly one
// request per call; retrying is the caller's business.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generation calls run long.
var httpClient = &http.Client{Timeout: 120 * time.Second}

// Select picks the provider. An explicit name wins; "auto" takes OpenAI when
// OPENAI_API_KEY is set, then Anthropic when ANTHROPIC_API_KEY is set.
func Select(cfg *config.Config, override string) (Provider, error) {
	name := override
	if name == "" {
		name = cfg.LLM.Provider
	}
	switch name {
	case "openai":
		return newOpenAI(cfg)
	case "anthropic":
		return newAnthropic(cfg)
	case "", "auto":
		if os.Getenv("OPENAI_API_KEY") != "" {
			return newOpenAI(cfg)
		}
		if os.Getenv("ANTHROPIC_API_KEY") != "" {
			return newAnthropic(cfg)
		}
		return nil, ErrNoProvider
	default:
		return nil, fmt.Errorf("unknown provider %q (auto, openai or anthropic)", name)
	}
}

// estimateTokens gives a rough sizing figure for logs (~4 chars per token).
func estimateTokens(text string) int {
	return int(float64(len(text)) / 4.0 * 1.1)
}
