// Package schema описывает структуру генерируемых записей.
//
// Схема загружается из JSON файла один раз при старте и дальше
// не изменяется. Порядок объявления properties сохраняется:
// он определяет порядок полей в промпте и порядок колонок в CSV.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Property — описание одного поля записи.
type Property struct {
	Type        string   `json:"type,omitempty"`        // "integer", "number", "string", "boolean"
	Description string   `json:"description,omitempty"`
	Example     any      `json:"example,omitempty"` // Скалярный пример, числа хранятся как json.Number
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
}

// Schema — структурное описание набора полей.
//
// Properties хранит дескрипторы по имени, order — порядок объявления.
// Стандартный encoding/json теряет порядок ключей объекта, поэтому
// properties разбирается вручную через json.Decoder токены.
type Schema struct {
	Title      string
	Type       string
	Properties map[string]*Property
	Required   []string

	order []string
}

// schemaJSON — промежуточная форма для разбора верхнего уровня.
type schemaJSON struct {
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Properties json.RawMessage `json:"properties"`
	Required   []string        `json:"required"`
}

// UnmarshalJSON разбирает схему с сохранением порядка properties.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var raw schemaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Title = raw.Title
	s.Type = raw.Type
	s.Required = raw.Required
	s.Properties = nil
	s.order = nil

	props := bytes.TrimSpace(raw.Properties)
	if len(props) == 0 || bytes.Equal(props, []byte("null")) {
		// properties отсутствует — валидация в Load вернёт ErrNoProperties
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(props))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to parse properties: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties must be a JSON object, got %v", tok)
	}

	s.Properties = make(map[string]*Property)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to parse property name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected token in properties: %v", keyTok)
		}

		var p Property
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("invalid descriptor for property '%s': %w", name, err)
		}

		s.Properties[name] = &p
		s.order = append(s.order, name)
	}

	return nil
}

// MarshalJSON сериализует схему с properties в порядке объявления.
//
// Нужен для дампа схемы в системный промпт: модель должна видеть
// поля в том же порядке что и пользователь в своём файле.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeKey := func(key string) {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		kb, _ := json.Marshal(key)
		buf.Write(kb)
		buf.WriteByte(':')
	}

	if s.Title != "" {
		writeKey("title")
		b, _ := json.Marshal(s.Title)
		buf.Write(b)
	}
	if s.Type != "" {
		writeKey("type")
		b, _ := json.Marshal(s.Type)
		buf.Write(b)
	}

	writeKey("properties")
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		nb, _ := json.Marshal(name)
		buf.Write(nb)
		buf.WriteByte(':')
		pb, err := json.Marshal(s.Properties[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal property '%s': %w", name, err)
		}
		buf.Write(pb)
	}
	buf.WriteByte('}')

	if len(s.Required) > 0 {
		writeKey("required")
		rb, err := json.Marshal(s.Required)
		if err != nil {
			return nil, err
		}
		buf.Write(rb)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PropertyNames возвращает имена полей в порядке объявления.
//
// Возвращается копия: схема после загрузки неизменяема.
func (s *Schema) PropertyNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Get возвращает дескриптор поля по имени.
func (s *Schema) Get(name string) (*Property, bool) {
	p, ok := s.Properties[name]
	return p, ok
}

// IsRequired проверяет входит ли поле в список обязательных.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Dump возвращает схему как отформатированный JSON для промпта.
func (s *Schema) Dump() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to dump schema: %w", err)
	}
	return string(data), nil
}
