package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"memobot/internal/ai_model"
)

const completionsPath = "/chat/completions"

// AiModelDeepSeek calls the DeepSeek chat completions API with fixed
// sampling parameters.
type AiModelDeepSeek struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	client      *http.Client
}

func NewAiModelDeepSeek(apiKey, baseURL, model string, temperature float64, maxTokens int, timeout time.Duration) *AiModelDeepSeek {
	return &AiModelDeepSeek{
		APIKey:      apiKey,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		client:      &http.Client{Timeout: timeout},
	}
}

func (a *AiModelDeepSeek) Generate(ctx context.Context, messages []ai_model.Message) (string, error) {
	if a.APIKey == "" {
		return "", fmt.Errorf("deepseek: api key is empty")
	}

	body, err := json.Marshal(request{
		Model:       a.Model,
		Messages:    messages,
		MaxTokens:   a.MaxTokens,
		Temperature: a.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("deepseek: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("deepseek: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			log.Println("[AiModelDeepSeek.Generate] request timed out:", err)
			return "", ai_model.ErrTimeout
		}
		return "", fmt.Errorf("deepseek: request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Println("[AiModelDeepSeek.Generate] Body.Close():", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", ai_model.ErrTimeout
		}
		return "", fmt.Errorf("deepseek: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("[AiModelDeepSeek.Generate] status=%d body=%s", resp.StatusCode, raw)
		return "", fmt.Errorf("deepseek: unexpected status %d", resp.StatusCode)
	}

	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		return "", fmt.Errorf("deepseek: decode response: %w", err)
	}
	if len(r.Choices) == 0 {
		return "", fmt.Errorf("deepseek: no choices in response")
	}

	text := strings.TrimSpace(r.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("deepseek: empty completion")
	}

	log.Printf("[AiModelDeepSeek.Generate] tokens in/out: %d/%d",
		r.Usage.PromptTokens, r.Usage.CompletionTokens)
	return text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr) && uerr.Timeout()
}
