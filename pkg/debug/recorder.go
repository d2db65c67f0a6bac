package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Recorder записывает трейс генерации и сохраняет его в JSON файл.
//
// Потокобезопасен — может использоваться из разных горутин.
type Recorder struct {
	mu sync.Mutex

	// config — конфигурация рекордера
	config RecorderConfig

	// trace — накапливаемый трейс выполнения
	trace GenerationTrace
}

// RecorderConfig конфигурация для создания Recorder.
type RecorderConfig struct {
	// LogsDir — директория для сохранения трейсов
	LogsDir string

	// IncludeMessages — включать полные сообщения промпта в трейс
	IncludeMessages bool

	// MaxResponseSize — максимальный размер ответа модели в трейсе
	// (превышение обрезается). 0 означает без ограничений.
	MaxResponseSize int
}

// NewRecorder создает новый Recorder с заданной конфигурацией.
//
// Если LogsDir не существует, пытается создать её.
func NewRecorder(cfg RecorderConfig) (*Recorder, error) {
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
	}

	// Генерируем RunID на основе времени
	runID := fmt.Sprintf("debug_%s", time.Now().Format("20060102_150405"))

	return &Recorder{
		config: cfg,
		trace: GenerationTrace{
			RunID:     runID,
			Timestamp: time.Now(),
		},
	}, nil
}

// Start начинает запись генерации.
func (r *Recorder) Start(schemaFile, model, userPrompt string, requested int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.trace.SchemaFile = schemaFile
	r.trace.Model = model
	r.trace.UserPrompt = userPrompt
	r.trace.Requested = requested
	r.trace.Timestamp = time.Now()
}

// RecordRequest записывает информацию о запросе к LLM.
func (r *Recorder) RecordRequest(req LLMRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.config.IncludeMessages {
		req.Messages = nil
	}
	r.trace.LLMRequest = req
}

// RecordResponse записывает ответ от LLM.
func (r *Recorder) RecordResponse(resp LLMResponse) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.MaxResponseSize > 0 && len(resp.Content) > r.config.MaxResponseSize {
		resp.Content = resp.Content[:r.config.MaxResponseSize] + "... (truncated)"
		resp.Truncated = true
	}
	r.trace.LLMResponse = resp

	if resp.Error != "" {
		r.trace.Error = fmt.Sprintf("LLM error: %s", resp.Error)
	}
}

// RecordParse записывает результат разбора ответа.
func (r *Recorder) RecordParse(result ParseResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.trace.Parse = result

	if result.Error != "" {
		r.trace.Error = fmt.Sprintf("parse error: %s", result.Error)
	}
}

// RecordSaved записывает информацию о сохранённом файле.
func (r *Recorder) RecordSaved(path string, recordCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.trace.Saved = &SavedFile{Path: path, Records: recordCount}
}

// Finalize завершает запись и сохраняет трейс в файл.
//
// Возвращает путь к сохраненному файлу или ошибку.
func (r *Recorder) Finalize(duration time.Duration) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.trace.Duration = duration.Milliseconds()

	data, err := json.MarshalIndent(r.trace, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation trace: %w", err)
	}

	filePath := r.getFilePath()
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write generation trace: %w", err)
	}

	return filePath, nil
}

// getFilePath возвращает путь к файлу для сохранения.
func (r *Recorder) getFilePath() string {
	if r.config.LogsDir != "" {
		return filepath.Join(r.config.LogsDir, r.trace.RunID+".json")
	}
	return r.trace.RunID + ".json"
}

// GetRunID возвращает идентификатор текущей сессии.
func (r *Recorder) GetRunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trace.RunID
}
