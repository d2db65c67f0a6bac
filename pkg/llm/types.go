// Базовые типы - определяем универсальный язык общения с моделями
package llm

// ChatRequest — унифицированный запрос к любой модели
type ChatRequest struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Messages    []Message // system-инструкция со схемой + запрос пользователя
}

// Message — одно сообщение
type Message struct {
	Role    string // "system", "user", "assistant"
	Content string
}

// Константы для удобства
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
