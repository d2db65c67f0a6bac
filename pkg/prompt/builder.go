// Сборка промпта - чистая функция от схемы и запроса пользователя.

package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/schema"
)

// ErrEmptySchema возвращается когда в схеме нет ни одного поля.
//
// Промпт без описания полей бессмысленен: модели не из чего
// генерировать записи.
var ErrEmptySchema = fmt.Errorf("schema has no properties to describe")

// GenerationRequest - пользовательский запрос на генерацию.
type GenerationRequest struct {
	Prompt  string // Свободное описание желаемых данных
	Records int    // Сколько записей генерировать
}

// Встроенный промпт по умолчанию.
//
// Используется когда в каталоге prompts/ нет файла. Текст держит модель
// в рамках: только JSON массив объектов, никакого markdown и пояснений,
// иначе разбор ответа усложняется.
const (
	defaultSystemTemplate = `You are a test data generator. Generate records based on the provided schema and user requirements.

Schema:
{{.SchemaDump}}

Schema Details:
{{.FieldList}}

IMPORTANT GUIDELINES:
1. Use the example values provided in the schema as a reference for realistic data generation
2. Respect minimum and maximum constraints for numeric fields
3. Follow the data types and formats specified in the schema
4. Generate diverse but realistic data that matches the examples and constraints
5. For fields with examples, use similar patterns but vary the actual values

CRITICAL: Return ONLY a JSON array of objects, without explanations, markdown formatting or any surrounding text. Each element of the array must be a JSON object whose keys are the field names from the schema.

Generate only valid records that strictly follow the schema.`

	defaultUserTemplate = `Generate records based on this prompt: {{.Prompt}}

Generate exactly {{.Records}} records.`
)

// Default возвращает встроенный промпт-файл.
func Default() *PromptFile {
	return &PromptFile{
		Messages: []Message{
			{Role: llm.RoleSystem, Content: defaultSystemTemplate},
			{Role: llm.RoleUser, Content: defaultUserTemplate},
		},
	}
}

// BuildMessages собирает сообщения для LLM из схемы и запроса.
//
// Чистая функция: одинаковые схема и запрос всегда дают одинаковые
// сообщения, что позволяет тестировать сборку без сети.
func (pf *PromptFile) BuildMessages(s *schema.Schema, req GenerationRequest) ([]llm.Message, error) {
	if s == nil || len(s.PropertyNames()) == 0 {
		return nil, ErrEmptySchema
	}
	if req.Records <= 0 {
		return nil, fmt.Errorf("records count must be positive, got %d", req.Records)
	}

	dump, err := s.Dump()
	if err != nil {
		return nil, err
	}

	data := TemplateData{
		Title:      s.Title,
		SchemaDump: dump,
		FieldList:  fieldList(s),
		Records:    req.Records,
		Prompt:     req.Prompt,
	}

	rendered, err := pf.RenderMessages(data)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, len(rendered))
	for i, msg := range rendered {
		messages[i] = llm.Message{Role: msg.Role, Content: msg.Content}
	}

	return messages, nil
}

// Build возвращает весь промпт одной строкой.
//
// Удобно для отладки и демонстраций, где сообщения
// не нужны по отдельности.
func Build(s *schema.Schema, req GenerationRequest) (string, error) {
	messages, err := Default().BuildMessages(s, req)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(messages))
	for i, msg := range messages {
		parts[i] = msg.Content
	}

	return strings.Join(parts, "\n\n"), nil
}

// fieldList описывает поля схемы построчно в порядке объявления.
//
// Формат строки:
//
//	- name (type): description | Example: X | Constraints: min: 0, max: 5
//
// Блоки Example и Constraints добавляются только когда заданы.
func fieldList(s *schema.Schema) string {
	lines := make([]string, 0, len(s.PropertyNames()))

	for _, name := range s.PropertyNames() {
		p, _ := s.Get(name)

		typeName := p.Type
		if typeName == "" {
			typeName = "unknown"
		}
		description := p.Description
		if description == "" {
			description = "No description"
		}

		line := fmt.Sprintf("- %s (%s): %s", name, typeName, description)

		if p.Example != nil {
			line += fmt.Sprintf(" | Example: %v", p.Example)
		}

		constraints := make([]string, 0, 2)
		if p.Minimum != nil {
			constraints = append(constraints, "min: "+formatBound(*p.Minimum))
		}
		if p.Maximum != nil {
			constraints = append(constraints, "max: "+formatBound(*p.Maximum))
		}
		if len(constraints) > 0 {
			line += " | Constraints: " + strings.Join(constraints, ", ")
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// formatBound печатает границу без экспоненты и лишних нулей.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
