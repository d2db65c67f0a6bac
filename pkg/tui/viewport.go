// Package tui предоставляет reusable helpers для работы с Bubble Tea viewport.
//
// viewport.go содержит ViewportManager — thread-safe обертку над
// bubbles/viewport с word-wrap через reflow и умной прокруткой.
package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"
)

// ViewportManager управляет viewport с thread-safe операциями.
//
// Хранит оригинальные строки без переносов: при изменении ширины терминала
// контент переформатируется заново (reflow), а не обрезается.
//
// Умная прокрутка: wasAtBottom вычисляется ДО изменения размеров, чтобы
// пользователь, читающий историю, не терял позицию при новых сообщениях.
type ViewportManager struct {
	viewport viewport.Model
	logLines []string // Оригинальные строки без word-wrap
	mu       sync.RWMutex
}

// NewViewportManager создает пустой ViewportManager.
func NewViewportManager() *ViewportManager {
	return &ViewportManager{
		viewport: viewport.New(0, 0),
		logLines: []string{},
	}
}

// HandleResize обрабатывает изменение размера терминала.
//
// Переформатирует весь контент под новую ширину и восстанавливает
// позицию прокрутки.
func (vm *ViewportManager) HandleResize(msg tea.WindowSizeMsg, headerHeight, footerHeight int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vpHeight := msg.Height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := msg.Width
	if vpWidth < 20 {
		vpWidth = 20
	}

	// Позиция вычисляется ДО изменения высоты
	wasAtBottom := vm.viewport.YOffset+vm.viewport.Height >= vm.viewport.TotalLineCount()

	vm.viewport.Height = vpHeight
	vm.viewport.Width = vpWidth

	vm.viewport.SetContent(vm.wrappedContent())

	if wasAtBottom {
		vm.viewport.GotoBottom()
		return
	}

	// Прижимаем YOffset к новому максимуму
	maxOffset := vm.viewport.TotalLineCount() - vm.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if vm.viewport.YOffset > maxOffset {
		vm.viewport.YOffset = maxOffset
	}
}

// Append добавляет строку в лог с умной прокруткой.
//
// Автоскролл вниз происходит только если пользователь был в нижней
// позиции; иначе его позиция сохраняется.
func (vm *ViewportManager) Append(content string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.logLines = append(vm.logLines, content)

	wasAtBottom := vm.viewport.YOffset+vm.viewport.Height >= vm.viewport.TotalLineCount()
	vm.viewport.SetContent(vm.wrappedContent())
	if wasAtBottom {
		vm.viewport.GotoBottom()
	}
}

// wrappedContent переформатирует логи под текущую ширину.
//
// Вызывается под мьютексом.
func (vm *ViewportManager) wrappedContent() string {
	// До первого WindowSizeMsg ширина неизвестна
	if vm.viewport.Width <= 0 {
		return strings.Join(vm.logLines, "\n")
	}

	var wrappedLines []string
	for _, line := range vm.logLines {
		wrapped := wrap.String(line, vm.viewport.Width)
		wrappedLines = append(wrappedLines, strings.Split(wrapped, "\n")...)
	}
	return strings.Join(wrappedLines, "\n")
}

// GetViewport возвращает копию внутреннего viewport.Model для рендеринга.
func (vm *ViewportManager) GetViewport() viewport.Model {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.viewport
}

// Content возвращает оригинальные строки лога (без переносов).
func (vm *ViewportManager) Content() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	dst := make([]string, len(vm.logLines))
	copy(dst, vm.logLines)
	return dst
}

// ScrollUp прокручивает viewport вверх на n строк.
func (vm *ViewportManager) ScrollUp(n int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.ScrollUp(n)
}

// ScrollDown прокручивает viewport вниз на n строк.
func (vm *ViewportManager) ScrollDown(n int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.ScrollDown(n)
}

// GotoBottom прокручивает viewport в самый низ.
func (vm *ViewportManager) GotoBottom() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.GotoBottom()
}
