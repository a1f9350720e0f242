package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"coldreach/internal/config"
)

const (
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 2048
)

type anthropic struct {
	apiKey  string
	model   string
	baseURL string
}

func newAnthropic(cfg *config.Config) (*anthropic, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, errors.New("ANTHROPIC_API_KEY is not set")
	}
	return &anthropic{
		apiKey:  key,
		model:   cfg.LLM.AnthropicModel,
		baseURL: strings.TrimRight(cfg.LLM.AnthropicBaseURL, "/"),
	}, nil
}

func (a *anthropic) Name() string {
	return "anthropic"
}

// Complete posts a single user message with an explicit JSON-only suffix and
// returns the first content block's text.
func (a *anthropic) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model":      a.model,
		"max_tokens": anthropicMaxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt + "\n\nRespond with JSON only."},
		},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/messages", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	log.Printf("[LLM] anthropic model=%s prompt≈%d tokens", a.model, estimateTokens(prompt))
	res, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return "", fmt.Errorf("anthropic HTTP %d: %s", res.StatusCode, strings.TrimSpace(string(b)))
	}

	var respStruct struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(res.Body).Decode(&respStruct); err != nil {
		return "", fmt.Errorf("anthropic decode failed: %w", err)
	}
	if len(respStruct.Content) == 0 {
		return "", errors.New("anthropic returned no content")
	}
	return respStruct.Content[0].Text, nil
}
