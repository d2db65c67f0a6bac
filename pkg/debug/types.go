// Package debug предоставляет инструменты для записи и анализа генераций.
//
// Пакет сохраняет детальные трейсы выполнения в JSON формате для последующего
// анализа: какой промпт ушёл к модели, что она вернула, как разобрался ответ.
package debug

import (
	"time"
)

// GenerationTrace представляет полный трейс одной генерации.
//
// Сохраняется в JSON файл и содержит всю информацию о выполнении:
// запрос пользователя, LLM вызов, разбор ответа, временные метрики, ошибки.
type GenerationTrace struct {
	// RunID — уникальный идентификатор запуска (используется в имени файла)
	RunID string `json:"run_id"`

	// Timestamp — время начала выполнения
	Timestamp time.Time `json:"timestamp"`

	// SchemaFile — путь к файлу схемы
	SchemaFile string `json:"schema_file,omitempty"`

	// Model — имя модели из реестра
	Model string `json:"model,omitempty"`

	// UserPrompt — исходный запрос пользователя
	UserPrompt string `json:"user_prompt"`

	// Requested — сколько записей запрошено
	Requested int `json:"requested_records"`

	// Duration — общая длительность выполнения в миллисекундах
	Duration int64 `json:"duration_ms"`

	// LLMRequest — информация о запросе к LLM
	LLMRequest LLMRequest `json:"llm_request,omitempty"`

	// LLMResponse — ответ от LLM
	LLMResponse LLMResponse `json:"llm_response,omitempty"`

	// Parse — результат разбора ответа
	Parse ParseResult `json:"parse,omitempty"`

	// Saved — информация о сохранённом файле (если сохраняли)
	Saved *SavedFile `json:"saved,omitempty"`

	// Error — ошибка если выполнение завершилось неудачно
	Error string `json:"error,omitempty"`
}

// LLMRequest содержит информацию о запросе к LLM.
type LLMRequest struct {
	// Model — использованная модель
	Model string `json:"model"`

	// Temperature — параметр температуры
	Temperature float64 `json:"temperature,omitempty"`

	// MaxTokens — максимальное количество токенов
	MaxTokens int `json:"max_tokens,omitempty"`

	// MessagesCount — количество сообщений в запросе
	MessagesCount int `json:"messages_count"`

	// Messages — полные сообщения запроса (для отладки промпта)
	Messages []MessageEntry `json:"messages,omitempty"`
}

// MessageEntry представляет одно сообщение запроса.
type MessageEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMResponse содержит ответ от LLM.
type LLMResponse struct {
	// Content — текстовый ответ (может быть обрезан по MaxResponseSize)
	Content string `json:"content,omitempty"`

	// Truncated — true если Content был обрезан
	Truncated bool `json:"truncated,omitempty"`

	// Duration — длительность вызова в миллисекундах
	Duration int64 `json:"duration_ms"`

	// Error — ошибка если произошла
	Error string `json:"error,omitempty"`
}

// ParseResult содержит результат разбора ответа модели.
type ParseResult struct {
	// Records — сколько записей извлечено
	Records int `json:"records"`

	// Error — ошибка разбора если произошла
	Error string `json:"error,omitempty"`
}

// SavedFile описывает сохранённый выходной файл.
type SavedFile struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
}
