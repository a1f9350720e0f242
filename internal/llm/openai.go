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

type openAI struct {
	apiKey  string
	model   string
	baseURL string
}

func newOpenAI(cfg *config.Config) (*openAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	return &openAI{
		apiKey:  key,
		model:   cfg.LLM.OpenAIModel,
		baseURL: strings.TrimRight(cfg.LLM.OpenAIBaseURL, "/"),
	}, nil
}

func (o *openAI) Name() string {
	return "openai"
}

// Complete posts a single user message. response_format pins the reply to a
// JSON object.
func (o *openAI) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"response_format": map[string]string{"type": "json_object"},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	log.Printf("[LLM] openai model=%s prompt≈%d tokens", o.model, estimateTokens(prompt))
	res, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		return "", fmt.Errorf("openai HTTP %d: %s", res.StatusCode, strings.TrimSpace(string(b)))
	}

	var respStruct struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(res.Body).Decode(&respStruct); err != nil {
		return "", fmt.Errorf("openai decode failed: %w", err)
	}
	if len(respStruct.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return respStruct.Choices[0].Message.Content, nil
}
