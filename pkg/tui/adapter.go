// Package tui предоставляет reusable helpers для подключения Bubble Tea TUI
// к генератору.
//
// Port & Adapter паттерн:
//   - pkg/events.* — Port (интерфейсы)
//   - pkg/tui.* — Adapter (Bubble Tea реализация поверх Port)
//
// TUI зависит только от events.Subscriber: он не знает ни про генератор,
// ни про схемы. Вся доменная логика подключается через callbacks.
//
// # Basic Usage
//
//	emitter := events.NewChanEmitter(100)
//	gen.SetEmitter(emitter)
//
//	model := tui.NewModel(emitter.Subscribe(), tui.UIConfig{...})
//	model.OnGenerate(func(prompt string, count int) {
//	    gen.Generate(ctx, ...)
//	})
//
// Rule 6: только reusable код, без app-specific логики.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/events"
)

// EventMsg конвертирует events.Event в Bubble Tea сообщение.
//
// Используется в Bubble Tea Update() для обработки событий генератора.
type EventMsg events.Event

// ReceiveEventCmd возвращает Bubble Tea Cmd для чтения событий из Subscriber.
//
// Функция-конвертер вызывается для каждого полученного события и должна
// возвращать Bubble Tea сообщение.
//
// Пример использования в Bubble Tea Model:
//
//	func (m model) Init() tea.Cmd {
//	    return tui.ReceiveEventCmd(subscriber, func(evt events.Event) tea.Msg {
//	        return EventMsg(evt)
//	    })
//	}
func ReceiveEventCmd(sub events.Subscriber, converter func(events.Event) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub.Events()
		if !ok {
			return tea.QuitMsg{}
		}
		return converter(event)
	}
}

// WaitForEvent возвращает Cmd который ждёт следующего события.
//
// Используется в Update() для продолжения чтения событий:
//
//	case EventMsg(event):
//	    // ... обработка события
//	    return m, tui.WaitForEvent(sub, converter)
func WaitForEvent(sub events.Subscriber, converter func(events.Event) tea.Msg) tea.Cmd {
	return ReceiveEventCmd(sub, converter)
}
