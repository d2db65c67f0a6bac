// Package openai реализует адаптер LLM провайдера для OpenAI-совместимых API.
//
// Через поле base_url в конфигурации модели работает с любым совместимым
// endpoint (DeepSeek, Zai, локальные шлюзы).
// Соблюдает правило 4 манифеста: работает только через интерфейс llm.Provider.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/config"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/utils"
	openai "github.com/sashabaranov/go-openai"
)

// Client реализует интерфейс llm.Provider для OpenAI-совместимых API.
//
// Клиент хранит дефолтные параметры модели из конфигурации;
// ChatRequest может переопределить их на один вызов.
type Client struct {
	api         *openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewClient создает OpenAI клиент на основе конфигурации модели.
//
// Принимает ModelDef напрямую для упрощения создания клиентов через factory.
// APIKey к этому моменту уже провалидирован в config.Load.
//
// Правило 2: Все настройки из конфигурации, никакого хардкода.
func NewClient(modelDef config.ModelDef) *Client {
	// Поддержка custom BaseURL для non-OpenAI провайдеров (DeepSeek, Zai и т.д.)
	cfg := openai.DefaultConfig(modelDef.APIKey)
	if modelDef.BaseURL != "" {
		cfg.BaseURL = modelDef.BaseURL
	}
	if modelDef.Timeout != "" {
		// Формат уже провалидирован в config.Load
		if timeout, err := time.ParseDuration(modelDef.Timeout); err == nil {
			cfg.HTTPClient.Timeout = timeout
		}
	}

	client := openai.NewClientWithConfig(cfg)

	return &Client{
		api:         client,
		model:       modelDef.ModelName,
		temperature: modelDef.Temperature,
		maxTokens:   modelDef.MaxTokens,
	}
}

// Chat выполняет один запрос к API и возвращает текст ответа модели.
//
// Алгоритм:
//  1. Конвертирует внутренние сообщения в формат OpenAI SDK
//  2. Подставляет дефолты модели там где ChatRequest их не задал
//  3. Вызывает API (единственная блокирующая сетевая операция)
//  4. Возвращает содержимое первого choice как есть
//
// Правило 7: Все ошибки возвращаются, никаких panic.
// Правило 11: контекст пробрасывается в SDK, отмена прерывает вызов.
func (c *Client) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	startTime := time.Now()

	model := req.Model
	if model == "" {
		model = c.model
	}

	utils.Debug("LLM request started",
		"model", model,
		"messages_count", len(req.Messages))

	// 1. Конвертируем наши сообщения в формат OpenAI SDK
	openaiMsgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		openaiMsgs[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	// 2. Собираем запрос с подстановкой дефолтов из конфигурации модели
	apiReq := openai.ChatCompletionRequest{
		Model:    model,
		Messages: openaiMsgs,
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	if temperature > 0 {
		apiReq.Temperature = float32(temperature)
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}
	if maxTokens > 0 {
		apiReq.MaxTokens = maxTokens
	}

	// 3. Вызываем API
	// Правило 7: возвращаем ошибку вместо panic
	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		utils.Error("LLM API request failed",
			"error", err,
			"error_type", ClassifyError(err).String(),
			"model", model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", fmt.Errorf("openai api error: %w", err)
	}

	// Проверяем что есть хотя бы один выбор
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	content := resp.Choices[0].Message.Content

	utils.Info("LLM response received",
		"model", model,
		"content_length", len(content),
		"duration_ms", time.Since(startTime).Milliseconds())

	return content, nil
}

// Ensure Client implements llm.Provider
var _ llm.Provider = (*Client)(nil)
