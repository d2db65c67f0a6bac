// Package records разбирает ответы модели в структурированные записи.
//
// Все ошибки следуют принципам из dev_manifest.md:
//   - Rule 7: Возвращаются вверх по стеку, никаких panic
//   - Явные типы ошибок для обработки на верхних уровнях
//   - Поддержка errors.Is() и errors.As() для error wrapping
package records

import (
	"errors"
	"fmt"
)

// ErrParse — базовая ошибка разбора ответа модели.
//
// Все ошибки разбора поддерживают errors.Is(err, ErrParse),
// чтобы верхний уровень мог отличить проблему формата ответа
// от сетевых и конфигурационных ошибок.
//
// Пример использования:
//
//	set, err := records.ParseResponse(raw)
//	if errors.Is(err, records.ErrParse) {
//	    // Показываем пользователю сырой ответ модели
//	}
var ErrParse = fmt.Errorf("failed to parse model response")

// ParseError — ошибка извлечения JSON массива из ответа.
//
// Хранит сырой текст ответа: пользователь должен видеть что именно
// вернула модель, иначе отладка промпта невозможна.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %s", e.Reason)
}

// Is проверяет что ошибка является ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// MalformedRecordError — элемент массива не является JSON объектом.
//
// Index указывает позицию элемента в массиве (с нуля).
type MalformedRecordError struct {
	Index int
	Value any
	Raw   string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record %d is not a JSON object (got %T)", e.Index, e.Value)
}

// Is проверяет что ошибка является ErrParse.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrParse
}

// RawResponse извлекает сырой ответ модели из ошибки разбора.
//
// Возвращает false если ошибка не связана с разбором ответа.
//
// Пример использования:
//
//	if raw, ok := records.RawResponse(err); ok {
//	    fmt.Println("Raw response:", raw)
//	}
func RawResponse(err error) (string, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Raw, true
	}
	var recordErr *MalformedRecordError
	if errors.As(err, &recordErr) {
		return recordErr.Raw, true
	}
	return "", false
}
