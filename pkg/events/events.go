// Package events предоставляет интерфейсы для реализации Port & Adapter паттерна.
//
// Это Port (интерфейс) для подписки на события генерации данных.
// Позволяет подключать любые UI (TUI, Web, CLI) без изменения библиотечной логики.
//
// # Port & Adapter Pattern
//
//	Port — это интерфейс (Emitter, Subscriber), определённый в библиотеке.
//	Adapter — это реализация интерфейса для конкретного UI (TUI, Web, etc).
//
// # Basic Usage
//
//	// В библиотеке (pkg/generator/):
//	gen.SetEmitter(events.NewChanEmitter(16))
//
//	// В UI (pkg/tui/):
//	sub := emitter.Subscribe()
//	for event := range sub.Events() {
//	    switch event.Type {
//	    case events.EventGenerating:
//	        ui.showSpinner()
//	    case events.EventRecords:
//	        ui.showPreview(event.Data)
//	    }
//	}
//
// # Thread Safety
//
// Все реализации интерфейсов должны быть thread-safe.
//
// # Rule 11: Context Propagation
//
// Emitter.Emit() принимает context.Context для отмены операции.
package events

import (
	"context"
	"time"
)

// EventType представляет тип события генерации.
type EventType string

const (
	// EventGenerating отправляется когда запрос ушёл к модели.
	EventGenerating EventType = "generating"

	// EventRecords отправляется когда ответ модели разобран в записи.
	EventRecords EventType = "records"

	// EventSaved отправляется когда записи сохранены в файл.
	EventSaved EventType = "saved"

	// EventError отправляется при ошибке.
	EventError EventType = "error"

	// EventDone отправляется когда генерация завершена.
	EventDone EventType = "done"
)

// EventData — sealed interface для данных события.
//
// Только типы из пакета events могут реализовать этот интерфейс,
// что обеспечивает compile-time type safety.
type EventData interface {
	eventData()
}

// GeneratingData содержит данные для EventGenerating.
type GeneratingData struct {
	Model   string // Имя модели из реестра
	Records int    // Сколько записей запрошено
	Prompt  string // Пользовательское описание данных
}

func (GeneratingData) eventData() {}

// RecordsData содержит данные для EventRecords.
//
// Preview — записи, уже отрендеренные в JSON с полями в порядке схемы.
// События не тянут доменные типы, чтобы пакет оставался чистым портом.
type RecordsData struct {
	Count   int
	Preview string
}

func (RecordsData) eventData() {}

// SavedData содержит данные для EventSaved.
type SavedData struct {
	Path  string
	Count int
}

func (SavedData) eventData() {}

// ErrorData содержит данные для EventError.
type ErrorData struct {
	Err error
}

func (ErrorData) eventData() {}

// DoneData содержит данные для EventDone.
type DoneData struct {
	Records  int
	Duration time.Duration
}

func (DoneData) eventData() {}

// Event представляет событие генерации.
//
// Data содержит типизированные данные события (EventData).
// Для каждого EventType существует соответствующий тип данных:
//   - EventGenerating: GeneratingData (модель, количество, промпт)
//   - EventRecords: RecordsData (количество, превью)
//   - EventSaved: SavedData (путь, количество)
//   - EventError: ErrorData (ошибка)
//   - EventDone: DoneData (количество, длительность)
type Event struct {
	Type      EventType
	Data      EventData
	Timestamp time.Time
}

// Emitter — это Port для отправки событий.
//
// Emitter инвертирует зависимость: библиотека (pkg/generator) зависит
// от этого интерфейса, а не от конкретного UI.
//
// Rule 11: все операции должны уважать context.Context.
type Emitter interface {
	// Emit отправляет событие.
	//
	// Если context отменён, операция должна прерваться.
	Emit(ctx context.Context, event Event)
}

// Subscriber позволяет читать события из канала.
//
// Rule 5: thread-safe операции.
type Subscriber interface {
	// Events возвращает read-only канал событий.
	//
	// Канал закрывается при вызове Close().
	Events() <-chan Event

	// Close закрывает канал событий и освобождает ресурсы.
	Close()
}
