// Package session предоставляет thread-safe состояние интерактивной сессии.
//
// Manager хранит историю запусков генерации: какой промпт запрашивали,
// сколько записей получили и куда их сохранили. История живёт в памяти
// одного запуска программы, между запусками не сохраняется.
//
// Package session следует правилам из dev_manifest.md:
//   - Rule 5: Thread-safe доступ через sync.RWMutex, никаких глобальных переменных
//   - Rule 6: Library code готовый к переиспользованию, без зависимостей от internal/
//   - Rule 7: Все ошибки возвращаются, никаких panic в бизнес-логике
package session

import (
	"sync"
	"time"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/records"
)

// Run — один завершённый запуск генерации.
type Run struct {
	// Prompt — текст запроса пользователя
	Prompt string

	// Requested — сколько записей просили сгенерировать
	Requested int

	// Records — разобранные записи
	Records records.RecordSet

	// SavedPath — путь сохранённого CSV; пустой если не сохраняли
	SavedPath string

	// Timestamp — момент завершения генерации
	Timestamp time.Time

	// Duration — полное время генерации
	Duration time.Duration
}

// Manager хранит историю запусков текущей сессии.
//
// Rule 5: все изменения защищены мьютексом.
type Manager struct {
	mu   sync.RWMutex
	runs []Run
}

// NewManager создает пустой менеджер сессии.
func NewManager() *Manager {
	return &Manager{
		runs: make([]Run, 0),
	}
}

// AddRun добавляет завершённый запуск в историю.
//
// Если Timestamp не задан, проставляет текущее время.
// Возвращает порядковый номер запуска (с единицы).
//
// Thread-safe.
func (m *Manager) AddRun(run Run) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	m.runs = append(m.runs, run)
	return len(m.runs)
}

// LastRun возвращает последний запуск.
//
// Возвращает ErrNoRuns если генераций ещё не было.
//
// Thread-safe.
func (m *Manager) LastRun() (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return m.runs[len(m.runs)-1], nil
}

// MarkSaved отмечает последний запуск как сохранённый в файл.
//
// Вызывается после успешной записи CSV: связывает записи с путём файла.
// Возвращает ErrNoRuns если генераций ещё не было.
//
// Thread-safe.
func (m *Manager) MarkSaved(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.runs) == 0 {
		return ErrNoRuns
	}
	m.runs[len(m.runs)-1].SavedPath = path
	return nil
}

// Runs возвращает копию истории запусков.
//
// Возвращает копию слайса, чтобы избежать race condition при изменении.
//
// Thread-safe.
func (m *Manager) Runs() []Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dst := make([]Run, len(m.runs))
	copy(dst, m.runs)
	return dst
}

// Count возвращает количество запусков в сессии.
//
// Thread-safe.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

// Stats возвращает статистику сессии: запусков, записей, сохранений.
//
// Используется для итоговой строки при выходе и статусбара TUI.
//
// Thread-safe.
func (m *Manager) Stats() (runs, totalRecords, saved int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs = len(m.runs)
	for _, run := range m.runs {
		totalRecords += len(run.Records)
		if run.SavedPath != "" {
			saved++
		}
	}
	return runs, totalRecords, saved
}

// Clear очищает историю запусков.
//
// Thread-safe.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = make([]Run, 0)
}
