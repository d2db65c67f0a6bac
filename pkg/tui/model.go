// Package tui предоставляет Model — TUI генератора синтетических данных.
//
// Model это простой переиспользуемый TUI. Он НЕ содержит логики генерации,
// только UI компоненты: всё доменное подключается через callbacks.
//
// # Layout
//
//	┌─────────────────────────────────────────────────┐
//	│ 🤖 Data Generator | Schema: product | Model: fast│ ← Status Bar
//	├─────────────────────────────────────────────────┤
//	│  [14:32:15] You: ten cheap gadgets              │
//	│  ⏳ Generating 5 records with fast...           │
//	│  [ {"product_id": 1001, ...} ]                  │
//	│  ✅ 5 records in 2.1s                           │
//	│                                                 │
//	│  Main Area (auto-scroll, word-wrap)             │
//	├─────────────────────────────────────────────────┤
//	│ > user prompt here                              │ ← Input Area
//	│ ⠋ Generating... | Runs: 2 | Saved: 1            │ ← Bottom Status
//	└─────────────────────────────────────────────────┘
//
// # Basic Usage
//
//	emitter := events.NewChanEmitter(100)
//	gen.SetEmitter(emitter)
//
//	model := tui.NewModel(emitter.Subscribe(), tui.UIConfig{
//	    SchemaName: "product",
//	    ModelName:  "fast",
//	})
//	model.OnGenerate(func(prompt string, count int) {
//	    gen.Generate(ctx, prompt.GenerationRequest{Prompt: prompt, Records: count})
//	})
//	model.OnSave(func(filename string) (string, int, error) {
//	    return saveLastRun(filename)
//	})
//	model.Run()
//
// # Commands
//
//	/count N     — сколько записей генерировать
//	/save [name] — сохранить последнюю генерацию в CSV
//	/help        — список команд
//	/quit        — выход
//
// Rule 6: Reusable library code, no app-specific logic.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/events"
)

// UIConfig конфигурирует Model.
//
// Все поля опциональны, используются дефолтные значения если не заданы.
type UIConfig struct {
	// Colors определяет цветовую схему
	Colors ColorScheme

	// Title — заголовок приложения (отображается в статус-баре)
	Title string

	// SchemaName — имя схемы для статус-бара
	SchemaName string

	// ModelName — имя модели для статус-бара
	ModelName string

	// InputPrompt — текст приглашения ввода
	InputPrompt string

	// InputHeight — высота поля ввода
	InputHeight int

	// ShowTimestamp — показывать timestamp у промптов пользователя
	ShowTimestamp bool

	// DefaultRecords — стартовое количество записей на генерацию
	DefaultRecords int

	// Debug — показывать DEBUG индикатор в статусной строке
	Debug bool
}

// Model — Bubble Tea модель генератора.
//
// Thread-safe. Работает с events.Subscriber для получения событий
// генератора (Port & Adapter).
type Model struct {
	config UIConfig

	// subscriber — подписчик на события генератора
	subscriber events.Subscriber

	// onGenerate — callback запуска генерации (запускается в горутине)
	onGenerate func(prompt string, count int)

	// onSave — callback сохранения последней генерации;
	// возвращает путь файла и количество записей
	onSave func(filename string) (string, int, error)

	// UI компоненты
	viewportMgr *ViewportManager
	statusBar   *StatusBar
	textarea    textarea.Model
	help        help.Model
	keys        KeyMap

	// Состояние
	mu           sync.RWMutex
	ready        bool
	showHelp     bool
	isGenerating bool
	hasResult    bool
	recordCount  int
}

// NewModel создаёт новую Model.
//
// Parameters:
//   - subscriber: Подписчик на события генератора (events.Subscriber)
//   - config: Конфигурация TUI (используются дефолтные значения если пустые)
func NewModel(subscriber events.Subscriber, config UIConfig) *Model {
	if config.Title == "" {
		config.Title = "🤖 Data Generator"
	}
	if config.InputPrompt == "" {
		config.InputPrompt = "> "
	}
	if config.InputHeight == 0 {
		config.InputHeight = 3
	}
	if config.DefaultRecords <= 0 {
		config.DefaultRecords = 5
	}
	if config.Colors.StatusForeground == "" {
		config.Colors = DefaultColorScheme()
	}

	ta := textarea.New()
	ta.Placeholder = "Describe the records to generate..."
	ta.Focus()
	ta.Prompt = config.InputPrompt
	ta.CharLimit = 500
	ta.SetHeight(config.InputHeight)
	ta.ShowLineNumbers = false

	h := help.New()
	h.ShowAll = false

	statusBar := NewStatusBar(config.Colors)
	statusBar.SetDebugMode(config.Debug)

	return &Model{
		config:      config,
		subscriber:  subscriber,
		viewportMgr: NewViewportManager(),
		statusBar:   statusBar,
		textarea:    ta,
		help:        h,
		keys:        DefaultKeyMap(),
		recordCount: config.DefaultRecords,
	}
}

// OnGenerate устанавливает callback для запуска генерации.
//
// Вызывается когда пользователь вводит промпт и нажимает Enter.
// Callback запускается в отдельной горутине: результат приходит
// обратно через события генератора.
func (t *Model) OnGenerate(handler func(prompt string, count int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onGenerate = handler
}

// OnSave устанавливает callback для сохранения последней генерации.
//
// filename может быть пустым — тогда используется имя по умолчанию.
// Callback должен вернуть путь сохранённого файла и количество записей.
func (t *Model) OnSave(handler func(filename string) (string, int, error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSave = handler
}

// SetStatusExtra устанавливает callback для доп. информации в статусной
// строке (например статистика сессии).
func (t *Model) SetStatusExtra(fn func() string) {
	t.statusBar.SetCustomExtra(fn)
}

// Run запускает TUI (блокирующий вызов).
func (t *Model) Run() error {
	p := tea.NewProgram(t)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// ===== BUBBLE TEA MODEL INTERFACE =====

// Init реализует tea.Model интерфейс.
func (t *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		ReceiveEventCmd(t.subscriber, func(event events.Event) tea.Msg {
			return EventMsg(event)
		}),
		t.statusBar.Tick(),
	)
}

// Update реализует tea.Model интерфейс.
func (t *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return t.handleGenerationEvent(events.Event(msg))

	case tea.WindowSizeMsg:
		return t.handleWindowSize(msg)

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case saveSuccessMsg:
		t.appendLine(AccentStyle(fmt.Sprintf("💾 Saved %d records → %s", msg.records, msg.path)), false)
		return t, nil

	case saveErrorMsg:
		t.appendLine(ErrorStyle("❌ Save failed: "+msg.err.Error()), false)
		return t, nil

	case spinner.TickMsg:
		cmd := t.statusBar.Update(msg)
		return t, cmd

	default:
		var cmd tea.Cmd
		t.textarea, cmd = t.textarea.Update(msg)
		return t, cmd
	}
}

// handleGenerationEvent обрабатывает события генератора.
func (t *Model) handleGenerationEvent(event events.Event) (tea.Model, tea.Cmd) {
	switch event.Type {
	case events.EventGenerating:
		if data, ok := event.Data.(events.GeneratingData); ok {
			t.appendLine(SystemStyle(fmt.Sprintf("⏳ Generating %d records with %s...", data.Records, data.Model)), false)
		}
		t.setGenerating(true)

	case events.EventRecords:
		if data, ok := event.Data.(events.RecordsData); ok {
			t.appendLine(PreviewStyle(data.Preview), false)
			t.mu.Lock()
			t.hasResult = true
			t.mu.Unlock()
		}

	case events.EventSaved:
		if data, ok := event.Data.(events.SavedData); ok {
			t.appendLine(AccentStyle(fmt.Sprintf("💾 Saved %d records → %s", data.Count, data.Path)), false)
		}

	case events.EventError:
		if data, ok := event.Data.(events.ErrorData); ok {
			t.appendLine(ErrorStyle("❌ "+data.Err.Error()), false)
		}
		t.setGenerating(false)
		t.textarea.Focus()

	case events.EventDone:
		if data, ok := event.Data.(events.DoneData); ok {
			t.appendLine(SystemStyle(fmt.Sprintf("✅ %d records in %s", data.Records, data.Duration.Round(10*time.Millisecond))), false)
		}
		t.setGenerating(false)
		t.textarea.Focus()
	}

	return t, WaitForEvent(t.subscriber, func(e events.Event) tea.Msg {
		return EventMsg(e)
	})
}

// handleWindowSize обрабатывает изменение размера терминала.
func (t *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	headerHeight := 1
	helpHeight := 0
	if t.showHelp {
		helpHeight = 3
	}
	// divider + input + нижняя статусная строка
	footerHeight := t.textarea.Height() + 2

	t.viewportMgr.HandleResize(msg, headerHeight+helpHeight, footerHeight)

	vpWidth := msg.Width
	if vpWidth < 20 {
		vpWidth = 20
	}
	t.textarea.SetWidth(vpWidth)
	t.help.Width = vpWidth

	if !t.ready {
		t.ready = true
		t.appendLine(SystemStyle("Type a prompt to generate records. /help for commands."), false)
	}

	return t, nil
}

// handleKeyPress обрабатывает нажатия клавиш.
func (t *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, t.keys.Quit):
		return t, tea.Quit

	case key.Matches(msg, t.keys.ToggleHelp):
		t.showHelp = !t.showHelp
		t.help.ShowAll = t.showHelp
		return t, nil

	case key.Matches(msg, t.keys.ScrollUp):
		t.viewportMgr.ScrollUp(t.viewportMgr.GetViewport().Height)
		return t, nil

	case key.Matches(msg, t.keys.ScrollDown):
		t.viewportMgr.ScrollDown(t.viewportMgr.GetViewport().Height)
		return t, nil

	case key.Matches(msg, t.keys.SaveToFile):
		return t, t.saveCmd("")

	case key.Matches(msg, t.keys.ConfirmInput):
		return t.handleSubmit()

	default:
		var cmd tea.Cmd
		t.textarea, cmd = t.textarea.Update(msg)
		return t, cmd
	}
}

// handleSubmit обрабатывает ввод пользователя по Enter.
func (t *Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(t.textarea.Value())
	if input == "" {
		return t, nil
	}
	t.textarea.Reset()

	if strings.HasPrefix(input, "/") {
		return t.handleCommand(input)
	}

	t.mu.RLock()
	busy := t.isGenerating
	handler := t.onGenerate
	count := t.recordCount
	t.mu.RUnlock()

	if busy {
		t.appendLine(SystemStyle("⏳ Generation in progress, please wait..."), false)
		return t, nil
	}

	t.appendLine(UserStyle("You: ")+input, true)

	if handler != nil {
		// Генерация в горутине: результат придёт через события
		go handler(input, count)
	}

	return t, nil
}

// handleCommand обрабатывает slash-команды.
func (t *Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	command := fields[0]

	switch command {
	case "/quit", "/exit":
		return t, tea.Quit

	case "/help":
		t.appendLine(SystemStyle(strings.Join([]string{
			"Commands:",
			"  /count N     — records per generation",
			"  /save [name] — save last records to CSV",
			"  /quit        — exit",
		}, "\n")), false)
		return t, nil

	case "/count":
		if len(fields) < 2 {
			t.mu.RLock()
			current := t.recordCount
			t.mu.RUnlock()
			t.appendLine(SystemStyle(fmt.Sprintf("Records per generation: %d", current)), false)
			return t, nil
		}
		value, err := strconv.Atoi(fields[1])
		if err != nil || value <= 0 {
			t.appendLine(ErrorStyle(fmt.Sprintf("❌ Invalid count: %q", fields[1])), false)
			return t, nil
		}
		t.mu.Lock()
		t.recordCount = value
		t.mu.Unlock()
		t.appendLine(SystemStyle(fmt.Sprintf("Records per generation: %d", value)), false)
		return t, nil

	case "/save":
		filename := ""
		if len(fields) > 1 {
			filename = fields[1]
		}
		return t, t.saveCmd(filename)

	default:
		t.appendLine(ErrorStyle(fmt.Sprintf("❌ Unknown command: %s (try /help)", command)), false)
		return t, nil
	}
}

// saveCmd возвращает команду сохранения последней генерации.
//
// Сохранение выполняется в tea.Cmd: результат приходит как
// saveSuccessMsg или saveErrorMsg.
func (t *Model) saveCmd(filename string) tea.Cmd {
	t.mu.RLock()
	handler := t.onSave
	hasResult := t.hasResult
	t.mu.RUnlock()

	if handler == nil {
		t.appendLine(SystemStyle("Saving is not available in this mode"), false)
		return nil
	}
	if !hasResult {
		t.appendLine(ErrorStyle("❌ Nothing to save yet — generate some records first"), false)
		return nil
	}

	return func() tea.Msg {
		path, records, err := handler(filename)
		if err != nil {
			return saveErrorMsg{err: err}
		}
		return saveSuccessMsg{path: path, records: records}
	}
}

// View реализует tea.Model интерфейс.
func (t *Model) View() string {
	if !t.ready {
		return "Initializing..."
	}

	t.mu.RLock()
	recordCount := t.recordCount
	t.mu.RUnlock()

	statusTop := RenderStatusBar(t.config.Title, t.config.SchemaName, t.config.ModelName, recordCount, t.config.Colors)
	viewport := t.viewportMgr.GetViewport()

	var helpView string
	if t.showHelp {
		helpView = "\n" + t.help.View(t.keys)
	}

	return fmt.Sprintf("%s\n%s%s\n%s\n%s\n%s",
		statusTop,
		viewport.View(),
		helpView,
		DividerStyle(viewport.Width),
		t.textarea.View(),
		t.statusBar.Render(),
	)
}

// ===== INTERNAL METHODS =====

// setGenerating переключает флаг генерации и спиннер.
func (t *Model) setGenerating(generating bool) {
	t.mu.Lock()
	t.isGenerating = generating
	t.mu.Unlock()
	t.statusBar.SetProcessing(generating)
}

// appendLine добавляет строку в лог.
func (t *Model) appendLine(line string, withTimestamp bool) {
	if withTimestamp && t.config.ShowTimestamp {
		line = fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), line)
	}
	t.viewportMgr.Append(line)
}

// Ensure Model implements tea.Model
var _ tea.Model = (*Model)(nil)
