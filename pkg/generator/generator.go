// Package generator реализует конвейер генерации синтетических данных.
//
// Конвейер линейный: промпт из схемы и запроса → один вызов LLM →
// разбор ответа в записи. Никаких циклов и повторов: неудачная
// генерация завершает текущий запуск, пользователь уточняет промпт
// и запускает новую.
//
// Basic usage:
//
//	gen, _ := generator.New(generator.Options{
//	    Schema:   s,
//	    Provider: provider,
//	})
//	result, _ := gen.Generate(ctx, prompt.GenerationRequest{Prompt: "ten laptops", Records: 10})
//
// Rule 4: генератор работает только через llm.Provider интерфейс.
package generator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/debug"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/events"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/prompt"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/records"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/schema"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/utils"
)

// Generator — фасад конвейера генерации.
//
// Thread-safe: все методы безопасны для параллельного вызова,
// хотя типичный сценарий — последовательные генерации из одного цикла.
type Generator struct {
	schema     *schema.Schema
	schemaFile string
	provider   llm.Provider
	promptFile *prompt.PromptFile
	modelName  string
	limiter    *rate.Limiter

	mu       sync.RWMutex
	emitter  events.Emitter
	recorder *debug.Recorder
}

// Options определяет зависимости генератора.
type Options struct {
	// Schema — загруженная схема (обязательно).
	Schema *schema.Schema

	// SchemaFile — путь к файлу схемы, попадает в отладочные трейсы.
	SchemaFile string

	// Provider — LLM провайдер (обязательно).
	Provider llm.Provider

	// ModelName — имя модели в реестре, для событий и логов.
	ModelName string

	// Prompt — промпт-файл; nil означает встроенный промпт.
	Prompt *prompt.PromptFile

	// RateLimit — запросов в секунду между генерациями; 0 = без лимита.
	RateLimit float64

	// RateBurst — burst для лимитера; значения меньше 1 приводятся к 1.
	RateBurst int
}

// Result — итог одной генерации.
type Result struct {
	Records  records.RecordSet // Разобранные записи
	Raw      string            // Сырой ответ модели
	Preview  string            // Записи как JSON с полями в порядке схемы
	Duration time.Duration     // Полное время генерации
}

// New создаёт генератор.
//
// Rule 7: возвращает ошибку вместо panic при отсутствии зависимостей.
func New(opts Options) (*Generator, error) {
	if opts.Schema == nil {
		return nil, fmt.Errorf("schema is required")
	}
	if opts.Provider == nil {
		return nil, fmt.Errorf("llm provider is required")
	}

	promptFile := opts.Prompt
	if promptFile == nil {
		promptFile = prompt.Default()
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Generator{
		schema:     opts.Schema,
		schemaFile: opts.SchemaFile,
		provider:   opts.Provider,
		promptFile: promptFile,
		modelName:  opts.ModelName,
		limiter:    limiter,
	}, nil
}

// SetEmitter устанавливает emitter для отправки событий.
//
// Port & Adapter паттерн: генератор зависит от абстракции (events.Emitter),
// а не от конкретной реализации UI.
//
// Thread-safe.
func (g *Generator) SetEmitter(emitter events.Emitter) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.emitter = emitter
}

// Subscribe возвращает Subscriber для чтения событий.
//
// Если emitter не установлен, создаёт ChanEmitter с буфером 100.
//
// Thread-safe.
func (g *Generator) Subscribe() events.Subscriber {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.emitter == nil {
		g.emitter = events.NewChanEmitter(100)
	}
	return g.emitter.(*events.ChanEmitter).Subscribe()
}

// SetRecorder устанавливает отладочный рекордер для следующих генераций.
//
// Рекордер создаётся и финализируется вызывающим кодом: один рекордер
// соответствует одному запуску, и только владелец знает когда запуск
// закончился (после решения о сохранении).
//
// Thread-safe. nil выключает запись трейсов.
func (g *Generator) SetRecorder(recorder *debug.Recorder) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recorder = recorder
}

// Generate выполняет одну генерацию.
//
// Шаги:
//  1. Сборка сообщений из схемы и запроса
//  2. Ожидание rate limiter (если настроен)
//  3. Один вызов LLM
//  4. Разбор ответа в записи
//
// Параметры вызова берутся из промпт-файла; opts переопределяют их
// на один вызов (llm.WithTemperature, llm.WithMaxTokens, llm.WithModel).
//
// Любая ошибка завершает запуск: вызывающий код показывает её
// пользователю и ждёт следующий запрос.
//
// Rule 11: принимает context.Context для отмены операции.
func (g *Generator) Generate(ctx context.Context, req prompt.GenerationRequest, opts ...llm.GenerateOption) (*Result, error) {
	started := time.Now()

	messages, err := g.promptFile.BuildMessages(g.schema, req)
	if err != nil {
		g.emitError(ctx, err)
		return nil, err
	}

	genOpts := llm.Apply(llm.GenerateOptions{
		Model:       g.promptFile.Config.Model,
		Temperature: g.promptFile.Config.Temperature,
		MaxTokens:   g.promptFile.Config.MaxTokens,
	}, opts...)

	chatReq := llm.ChatRequest{
		Model:       genOpts.Model,
		Temperature: genOpts.Temperature,
		MaxTokens:   genOpts.MaxTokens,
		Messages:    messages,
	}

	g.recordStart(req, chatReq)
	g.emitEvent(ctx, events.Event{
		Type:      events.EventGenerating,
		Data:      events.GeneratingData{Model: g.modelName, Records: req.Records, Prompt: req.Prompt},
		Timestamp: time.Now(),
	})

	// Пауза между генерациями чтобы не упереться в лимиты API
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter interrupted: %w", err)
		}
	}

	utils.Info("Generation started", "model", g.modelName, "records", req.Records)

	llmStarted := time.Now()
	raw, err := g.provider.Chat(ctx, chatReq)
	llmDuration := time.Since(llmStarted)

	if err != nil {
		g.recordResponse(debug.LLMResponse{Duration: llmDuration.Milliseconds(), Error: err.Error()})
		g.emitError(ctx, err)
		utils.Error("Generation failed", "error", err)
		return nil, err
	}

	g.recordResponse(debug.LLMResponse{Content: raw, Duration: llmDuration.Milliseconds()})

	set, err := records.ParseResponse(raw)
	if err != nil {
		g.recordParse(debug.ParseResult{Error: err.Error()})
		g.emitError(ctx, err)
		utils.Error("Response parsing failed", "error", err)
		return nil, err
	}
	g.recordParse(debug.ParseResult{Records: len(set)})

	preview, err := records.FormatJSON(set, g.schema.PropertyNames())
	if err != nil {
		g.emitError(ctx, err)
		return nil, err
	}

	duration := time.Since(started)

	g.emitEvent(ctx, events.Event{
		Type:      events.EventRecords,
		Data:      events.RecordsData{Count: len(set), Preview: preview},
		Timestamp: time.Now(),
	})
	g.emitEvent(ctx, events.Event{
		Type:      events.EventDone,
		Data:      events.DoneData{Records: len(set), Duration: duration},
		Timestamp: time.Now(),
	})

	utils.Info("Generation completed", "records", len(set), "duration_ms", duration.Milliseconds())

	return &Result{
		Records:  set,
		Raw:      raw,
		Preview:  preview,
		Duration: duration,
	}, nil
}

// emitEvent отправляет событие если emitter установлен.
func (g *Generator) emitEvent(ctx context.Context, event events.Event) {
	g.mu.RLock()
	emitter := g.emitter
	g.mu.RUnlock()

	if emitter != nil {
		emitter.Emit(ctx, event)
	}
}

// emitError отправляет EventError если emitter установлен.
func (g *Generator) emitError(ctx context.Context, err error) {
	g.emitEvent(ctx, events.Event{
		Type:      events.EventError,
		Data:      events.ErrorData{Err: err},
		Timestamp: time.Now(),
	})
}

// recordStart записывает начало генерации в трейс.
func (g *Generator) recordStart(req prompt.GenerationRequest, chatReq llm.ChatRequest) {
	g.mu.RLock()
	recorder := g.recorder
	g.mu.RUnlock()

	if recorder == nil {
		return
	}

	recorder.Start(g.schemaFile, g.modelName, req.Prompt, req.Records)

	traceModel := chatReq.Model
	if traceModel == "" {
		traceModel = g.modelName
	}
	entries := make([]debug.MessageEntry, len(chatReq.Messages))
	for i, msg := range chatReq.Messages {
		entries[i] = debug.MessageEntry{Role: msg.Role, Content: msg.Content}
	}
	recorder.RecordRequest(debug.LLMRequest{
		Model:         traceModel,
		Temperature:   chatReq.Temperature,
		MaxTokens:     chatReq.MaxTokens,
		MessagesCount: len(chatReq.Messages),
		Messages:      entries,
	})
}

// recordResponse записывает ответ LLM в трейс.
func (g *Generator) recordResponse(resp debug.LLMResponse) {
	g.mu.RLock()
	recorder := g.recorder
	g.mu.RUnlock()

	if recorder != nil {
		recorder.RecordResponse(resp)
	}
}

// recordParse записывает результат разбора в трейс.
func (g *Generator) recordParse(result debug.ParseResult) {
	g.mu.RLock()
	recorder := g.recorder
	g.mu.RUnlock()

	if recorder != nil {
		recorder.RecordParse(result)
	}
}
