package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// FormatJSON возвращает записи как отформатированный JSON массив.
//
// Поля каждой записи выводятся в порядке order (порядок схемы),
// неизвестные поля добавляются после в алфавитном порядке.
// Стандартный json.Marshal сортирует ключи map по алфавиту,
// поэтому массив собирается вручную.
func FormatJSON(set RecordSet, order []string) (string, error) {
	if len(set) == 0 {
		return "[]", nil
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, rec := range set {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  {")
		for j, name := range fieldOrder(rec, order) {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString("\n    ")
			kb, _ := json.Marshal(name)
			buf.Write(kb)
			buf.WriteString(": ")
			vb, err := json.Marshal(rec[name])
			if err != nil {
				return "", fmt.Errorf("failed to format field '%s': %w", name, err)
			}
			buf.Write(vb)
		}
		buf.WriteString("\n  }")
	}
	buf.WriteString("\n]")
	return buf.String(), nil
}

// fieldOrder возвращает имена полей записи: сначала известные поля
// в порядке order, затем остальные по алфавиту.
func fieldOrder(rec Record, order []string) []string {
	names := make([]string, 0, len(rec))
	seen := make(map[string]bool, len(rec))

	for _, name := range order {
		if _, ok := rec[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}

	extras := make([]string, 0)
	for name := range rec {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)

	return append(names, extras...)
}
