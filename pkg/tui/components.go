// Package tui предоставляет reusable UI компоненты и стили.
//
// components.go содержит общие стили для рендеринга сообщений в логе TUI.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ===== SHARED STYLES =====

// SystemStyle возвращает стиль для системных сообщений.
func SystemStyle(str string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("242")). // Серый
		Render(str)
}

// UserStyle возвращает стиль для промптов пользователя.
func UserStyle(str string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("226")). // Yellow
		Bold(true).
		Render(str)
}

// PreviewStyle возвращает стиль для превью сгенерированных записей.
func PreviewStyle(str string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("86")). // Cyan
		Render(str)
}

// ErrorStyle возвращает стиль для ошибок.
func ErrorStyle(str string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")). // Red
		Bold(true).
		Render(str)
}

// AccentStyle возвращает стиль для акцентов: счетчики, пути файлов.
func AccentStyle(str string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("154")). // Green
		Bold(true).
		Render(str)
}

// DividerStyle возвращает горизонтальную разделительную линию.
func DividerStyle(width int) string {
	line := strings.Repeat("─", width)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")). // Тёмно-серый
		Render(line)
}

// ===== COMPONENT BUILDERS =====

// RenderStatusBar рендерит верхний статус-бар.
//
// Parameters:
//   - title: Заголовок приложения
//   - schemaName: Имя активной схемы
//   - model: Имя модели
//   - recordCount: Сколько записей генерируется за запуск
//   - colors: Цветовая схема
//
// Возвращает отрендеренную строку статус-бара.
func RenderStatusBar(title, schemaName, model string, recordCount int, colors ColorScheme) string {
	if schemaName == "" {
		schemaName = "N/A"
	}
	if model == "" {
		model = "N/A"
	}

	content := fmt.Sprintf(" %s | Schema: %s | Model: %s | Records: %d ", title, schemaName, model, recordCount)

	style := lipgloss.NewStyle().
		Foreground(colors.StatusForeground).
		Background(colors.StatusBackground).
		Bold(true)

	return style.Render(content)
}
