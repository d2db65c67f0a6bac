package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/records"
)

// WriteCSV записывает записи в CSV файл.
//
// Первая строка — заголовок из columns (порядок объявления полей схемы),
// дальше по строке на запись. Отсутствующее в записи поле даёт пустую
// ячейку. Целевой каталог создаётся при необходимости, существующий
// файл перезаписывается. Кодировка UTF-8 (стандарт для Go строк).
func WriteCSV(path string, columns []string, set records.RecordSet) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns to write")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	row := make([]string, len(columns))
	for _, rec := range set {
		for i, name := range columns {
			row[i] = formatValue(rec[name])
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV data: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", path, err)
	}

	return nil
}

// formatValue приводит значение записи к ячейке CSV.
//
// json.Number сохраняет число как в ответе модели ("9.99" не станет
// "9.990000"), отсутствующее значение даёт пустую ячейку.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}
