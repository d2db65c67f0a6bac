package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Ошибки загрузки схем.

// ErrNoProperties возвращается когда схема не содержит ни одного свойства.
//
// Схема без properties не может построить ни промпт, ни CSV заголовок,
// поэтому загрузка останавливается сразу.
//
// Пример использования:
//
//	s, err := schema.Load(path)
//	if errors.Is(err, schema.ErrNoProperties) {
//	    // Схема пустая, просим пользователя исправить файл
//	}
var ErrNoProperties = fmt.Errorf("schema has no properties")

// Load читает и валидирует схему из JSON файла.
//
// Порядок работы:
//  1. Проверка что файл существует (Правило 12: валидация путей)
//  2. Чтение файла
//  3. Разбор JSON с сохранением порядка properties
//  4. Проверка что схема содержит хотя бы одно свойство
//
// Возвращает ошибку если файл не найден, JSON некорректен
// или properties отсутствует/пустой.
func Load(path string) (*Schema, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("schema file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	if len(s.Properties) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoProperties, path)
	}

	return &s, nil
}

// Resolve превращает аргумент командной строки в путь к файлу схемы.
//
// Правила разрешения:
//   - Аргумент с разделителем пути используется как есть
//     ("./my.json", "/tmp/s.json")
//   - Голое имя файла сначала ищется в каталоге схем
//     ("product_schema.json" -> "schemas/product_schema.json")
//   - Если в каталоге схем файла нет, имя возвращается без изменений,
//     и Load сообщит об отсутствии файла
func Resolve(arg, schemasDir string) string {
	if filepath.Base(arg) != arg {
		return arg
	}

	candidate := filepath.Join(schemasDir, arg)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}

	return arg
}
