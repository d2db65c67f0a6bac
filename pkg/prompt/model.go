// Структуры данных - описывает формат YAML файла промпта.
package prompt

// PromptFile описывает структуру YAML-файла с промптом
type PromptFile struct {
	Config   PromptConfig `yaml:"config"`
	Messages []Message    `yaml:"messages"`
}

// PromptConfig - настройки модели для конкретного промпта
type PromptConfig struct {
	Model       string  `yaml:"model"`       // Например "deepseek-chat"
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Message - одно сообщение в чате
type Message struct {
	Role    string `yaml:"role"`    // system, user, assistant
	Content string `yaml:"content"` // Шаблон с {{.Variables}}
}

// TemplateData - переменные доступные в шаблонах сообщений.
//
// Авторы промпт-файлов используют их как {{.SchemaDump}}, {{.Records}} и т.д.
type TemplateData struct {
	Title      string // Название схемы (может быть пустым)
	SchemaDump string // Схема как отформатированный JSON
	FieldList  string // Построчное описание полей: имя, тип, описание, пример, ограничения
	Records    int    // Сколько записей генерировать
	Prompt     string // Пользовательское описание данных
}
