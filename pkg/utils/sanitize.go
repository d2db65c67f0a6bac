// Package utils предоставляет утилиты для санитайза пользовательского ввода.
package utils

import (
	"strings"
)

// SanitizeFilename приводит пользовательское имя файла к безопасному виду.
//
// Имя файла приходит из интерактивного ввода и может содержать символы,
// недопустимые в файловых системах. Правило 12: все пути от пользователя
// проходят валидацию перед использованием.
//
// Выполняет:
//   - Замену запрещённых символов (< > : " | ? * и управляющих) на '_'
//   - Обрезку пробелов и точек по краям
//   - Подстановку fallback если после очистки ничего не осталось
//
// Разделители пути ('/', '\') не трогает: выбор каталога — ответственность
// вызывающего кода, который резолвит путь целиком.
func SanitizeFilename(name, fallback string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '|', '?', '*':
			return '_'
		}
		if r < 32 {
			return '_'
		}
		return r
	}, name)

	cleaned = strings.Trim(cleaned, " .")
	if cleaned == "" {
		return fallback
	}

	return cleaned
}
