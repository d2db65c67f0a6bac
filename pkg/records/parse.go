package records

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/utils"
)

// ParseResponse извлекает записи из сырого ответа модели.
//
// Модели оборачивают JSON в markdown блоки и добавляют пояснительный
// текст до и после данных, поэтому разбор идет в четыре шага:
//  1. Снятие markdown обрамления (utils.CleanJsonBlock)
//  2. Поиск первой '[' и последней ']' в тексте
//  3. Разбор подстроки как JSON массива (числа как json.Number)
//  4. Проверка что каждый элемент массива является объектом
//
// Известное ограничение: если пояснительный текст сам содержит '['
// до массива данных, эвристика захватит лишние символы и разбор
// завершится ParseError с сырым текстом внутри.
func ParseResponse(raw string) (RecordSet, error) {
	cleaned := utils.CleanJsonBlock(raw)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end == -1 || end < start {
		return nil, &ParseError{Reason: "no JSON array found in response", Raw: raw}
	}

	dec := json.NewDecoder(strings.NewReader(cleaned[start : end+1]))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid JSON array: %v", err), Raw: raw}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Reason: "extra data after JSON array", Raw: raw}
	}

	set := make(RecordSet, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &MalformedRecordError{Index: i, Value: item, Raw: raw}
		}
		set = append(set, Record(obj))
	}

	return set, nil
}
