// Package tui предоставляет reusable UI компоненты и стили.
//
// statusbar.go содержит StatusBar — нижнюю статусную строку со спиннером
// во время генерации и произвольной дополнительной информацией.
package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar управляет нижней статусной строкой.
//
// Thread-safe.
type StatusBar struct {
	spinner      spinner.Model
	isProcessing bool
	debugMode    bool
	mu           sync.RWMutex

	colors ColorScheme

	// customExtra — callback для доп. информации (например "Runs: 3 | Saved: 1")
	customExtra func() string
}

// NewStatusBar создает StatusBar с заданной цветовой схемой.
func NewStatusBar(colors ColorScheme) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colors.Preview)

	return &StatusBar{
		spinner: s,
		colors:  colors,
	}
}

// Tick возвращает команду запуска анимации спиннера.
func (sb *StatusBar) Tick() tea.Cmd {
	return sb.spinner.Tick
}

// Update обрабатывает тики спиннера.
func (sb *StatusBar) Update(msg tea.Msg) tea.Cmd {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	var cmd tea.Cmd
	sb.spinner, cmd = sb.spinner.Update(msg)
	return cmd
}

// Render возвращает отрендеренную статусную строку.
func (sb *StatusBar) Render() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	var stateText string
	if sb.isProcessing {
		stateText = sb.spinner.View() + " Generating..."
	} else {
		stateText = "✓ Ready"
	}

	statePart := lipgloss.NewStyle().
		Background(sb.colors.StatusBackground).
		Padding(0, 1).
		Foreground(func() lipgloss.Color {
			if sb.isProcessing {
				return sb.colors.Preview
			}
			return sb.colors.SystemMessage
		}()).
		Render(stateText)

	var extraPart string
	if sb.debugMode {
		extraPart = lipgloss.NewStyle().
			Background(sb.colors.ErrorMessage).
			Foreground(lipgloss.Color("15")).
			Bold(true).
			Padding(0, 1).
			Render("DEBUG")
	}

	if sb.customExtra != nil {
		extraInfo := sb.customExtra()
		if extraInfo != "" {
			extraPart += lipgloss.NewStyle().
				Background(sb.colors.StatusBackground).
				Padding(0, 1).
				Foreground(sb.colors.StatusForeground).
				Render(extraInfo)
		}
	}

	return statePart + extraPart
}

// SetProcessing переключает спиннер генерации.
func (sb *StatusBar) SetProcessing(processing bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.isProcessing = processing
}

// IsProcessing возвращает текущий статус генерации.
func (sb *StatusBar) IsProcessing() bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.isProcessing
}

// SetDebugMode включает индикатор DEBUG.
func (sb *StatusBar) SetDebugMode(enabled bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.debugMode = enabled
}

// SetCustomExtra устанавливает callback для доп. информации в статусной строке.
//
// Callback вызывается при каждом рендеринге и добавляется после спиннера.
func (sb *StatusBar) SetCustomExtra(fn func() string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.customExtra = fn
}
