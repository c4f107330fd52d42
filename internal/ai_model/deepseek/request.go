package deepseek

import "memobot/internal/ai_model"

type request struct {
	Model       string             `json:"model"`
	Messages    []ai_model.Message `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Stream      bool               `json:"stream"`
}
