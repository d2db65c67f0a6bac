// list-bucket — просмотр выгруженных датасетов в S3 бакете.
//
// Мини-TUI: спиннер на время загрузки, viewport со списком объектов.
//
// Использование:
//
//	./list-bucket
//	./list-bucket -prefix datasets/2026-08-21
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/app"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/s3storage"
)

// --- Стили ---
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))
)

// --- Сообщения (Messages) ---
type errMsg error
type contentMsg []s3storage.StoredObject

// --- Модель ---
type model struct {
	s3Client *s3storage.Client
	prefix   string
	spinner  spinner.Model
	viewport viewport.Model

	loading bool
	err     error
	ready   bool
}

func initialModel(s3 *s3storage.Client, prefix string) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return model{
		s3Client: s3,
		prefix:   prefix,
		spinner:  s,
		loading:  true, // Сразу начинаем загрузку
	}
}

// Init запускает спиннер и команду загрузки
func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchDatasets(m.s3Client, m.prefix),
	)
}

// Update - обработка событий
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {

	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case errMsg:
		m.err = msg
		m.loading = false
		return m, nil

	case contentMsg:
		m.loading = false
		m.viewport.SetContent(formatObjectList(msg))
		return m, nil

	case tea.WindowSizeMsg:
		headerHeight := 2
		verticalMarginHeight := 2

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-verticalMarginHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - verticalMarginHeight
		}
	}

	if m.loading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View - отрисовка
func (m model) View() string {
	if m.err != nil {
		return fmt.Sprintf("\n❌ Error: %v\n\nPress 'q' to quit.", m.err)
	}

	header := titleStyle.Render(fmt.Sprintf("📦 Datasets — bucket %q", m.s3Client.Bucket()))

	if m.loading {
		return fmt.Sprintf("\n %s Connecting to S3 and fetching objects...\n\n", m.spinner.View())
	}

	return fmt.Sprintf("%s\n%s\n\n(Press 'q' to quit, arrows to scroll)", header, m.viewport.View())
}

// --- Бизнес-логика (Commands) ---

func fetchDatasets(client *s3storage.Client, prefix string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		objects, err := client.ListDatasets(ctx, prefix)
		if err != nil {
			return errMsg(err)
		}
		return contentMsg(objects)
	}
}

// formatObjectList форматирует список объектов для вьюпорта
func formatObjectList(objects []s3storage.StoredObject) string {
	if len(objects) == 0 {
		return "No datasets uploaded yet."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total objects: %d\n\n", len(objects)))

	for _, obj := range objects {
		size := fmt.Sprintf("%.2f KB", float64(obj.Size)/1024)
		b.WriteString(fmt.Sprintf("%s  %-10s  %s  %s\n",
			itemStyle.Render("•"),
			size,
			obj.LastModified.Format("2006-01-02 15:04"),
			obj.Key,
		))
	}
	return b.String()
}

// --- Main ---

func main() {
	var (
		configPath = flag.String("config", "", "Path to config.yaml (default: ./config.yaml)")
		prefix     = flag.String("prefix", "datasets", "Object prefix to list")
	)
	flag.Parse()

	// .env опционален: ключи могут прийти из обычного окружения
	_ = godotenv.Load()

	cfg, _, err := app.InitializeConfig(&app.DefaultConfigPathFinder{ConfigFlag: *configPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if !cfg.S3.Enabled {
		fmt.Fprintln(os.Stderr, "S3 is disabled: set s3.enabled: true in config.yaml")
		os.Exit(1)
	}

	s3Client, err := s3storage.New(cfg.S3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "S3 init error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		initialModel(s3Client, *prefix),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}
