// Package app предоставляет переиспользуемые компоненты для инициализации
// генератора в разных контекстах (CLI, TUI).
//
// Пакет следует правилам из dev_manifest.md:
//   - Работает через llm.Provider интерфейс (Правило 4)
//   - Использует реестр моделей из конфигурации (Правило 3)
//   - Все ошибки возвращаются, никаких panic (Правило 7)
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/config"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/generator"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/models"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/prompt"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/s3storage"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/schema"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/session"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/utils"
)

// Components содержит все компоненты приложения для переиспользования.
//
// Эта структура используется и CLI, и TUI версиями, чтобы не дублировать
// код инициализации между ними.
type Components struct {
	Config     *config.AppConfig
	Schema     *schema.Schema
	SchemaFile string
	Registry   *models.Registry
	Provider   llm.Provider
	ModelDef   config.ModelDef
	ModelName  string
	PromptFile *prompt.PromptFile
	Generator  *generator.Generator
	Session    *session.Manager

	// S3 — клиент выгрузки датасетов; nil если s3.enabled = false
	S3 *s3storage.Client
}

// Options — параметры инициализации из флагов командной строки.
type Options struct {
	// SchemaArg — схема: голое имя (ищется в schemas_dir) или путь
	SchemaArg string

	// ModelName — алиас модели из конфига; пусто = models.default
	ModelName string

	// PromptFile — имя YAML шаблона промпта; пусто = из конфига или встроенный
	PromptFile string
}

// ConfigPathFinder определяет стратегию поиска пути к config.yaml.
//
// По умолчанию используется DefaultConfigPathFinder, но можно
// реализовать свою стратегию для тестов или специальных случаев.
type ConfigPathFinder interface {
	FindConfigPath() string
}

// DefaultConfigPathFinder реализует стандартную стратегию поиска config.yaml.
//
// Порядок поиска:
// 1. Флаг -config (если указан)
// 2. Текущая директория (./config.yaml)
// 3. Директория бинарника
// 4. Родительская директория (для запуска из cmd/datagen/)
type DefaultConfigPathFinder struct {
	// ConfigFlag - значение флага -config, если указан
	ConfigFlag string
}

// FindConfigPath находит путь к config.yaml.
func (f *DefaultConfigPathFinder) FindConfigPath() string {
	var cfgPath string

	// 1. Флаг имеет приоритет
	if f.ConfigFlag != "" {
		return resolveAbsPath(f.ConfigFlag)
	}

	// 2. Текущая директория
	cfgPath = "config.yaml"
	if _, err := os.Stat(cfgPath); err == nil {
		return resolveAbsPath(cfgPath)
	}

	// 3. Директория бинарника
	if execPath, err := os.Executable(); err == nil {
		binDir := filepath.Dir(execPath)
		cfgPath = filepath.Join(binDir, "config.yaml")
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}

	// 4. Родительская директория (для запуска из cmd/datagen/)
	cfgPath = filepath.Join("..", "..", "config.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return resolveAbsPath(cfgPath)
	}

	cfgPath = filepath.Join("..", "config.yaml")
	if _, err := os.Stat(cfgPath); err == nil {
		return resolveAbsPath(cfgPath)
	}

	// Возвращаем дефолтный путь (даже если не существует)
	return resolveAbsPath("config.yaml")
}

// InitializeConfig инициализирует и загружает конфигурацию.
//
// Правило 2: все настройки в YAML с поддержкой ENV-переменных.
func InitializeConfig(finder ConfigPathFinder) (*config.AppConfig, string, error) {
	cfgPath := finder.FindConfigPath()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config from %s: %w", cfgPath, err)
	}

	return cfg, cfgPath, nil
}

// Initialize создаёт и инициализирует все компоненты приложения.
//
// Эта функция является переиспользуемой - она вызывается и из CLI,
// и из TUI версии. Вся логика инициализации инкапсулирована здесь.
//
// Правило 6: entry points - initialization and orchestration only.
// Правило 11: принимает context.Context для сетевых проверок (S3).
func Initialize(ctx context.Context, cfg *config.AppConfig, opts Options) (*Components, error) {
	utils.Info("Initializing components", "schema", opts.SchemaArg, "model", opts.ModelName)

	// 1. Загружаем схему
	schemaFile := schema.Resolve(opts.SchemaArg, cfg.App.SchemasDir)
	loadedSchema, err := schema.Load(schemaFile)
	if err != nil {
		utils.Error("Schema loading failed", "file", schemaFile, "error", err)
		return nil, err
	}
	utils.Info("Schema loaded", "file", schemaFile, "fields", len(loadedSchema.PropertyNames()))

	// 2. Строим реестр моделей из конфигурации
	registry, err := models.NewRegistryFromConfig(cfg)
	if err != nil {
		utils.Error("Model registry creation failed", "error", err)
		return nil, fmt.Errorf("failed to build model registry: %w", err)
	}

	// 3. Выбираем модель: флаг -model, иначе models.default
	provider, modelDef, modelName, err := registry.GetWithFallback(opts.ModelName, cfg.Models.Default)
	if err != nil {
		utils.Error("Model selection failed", "requested", opts.ModelName, "error", err)
		return nil, err
	}
	utils.Info("Model selected", "name", modelName, "provider", modelDef.Provider, "api_model", modelDef.ModelName)

	// 4. Загружаем промпт-файл (пустой путь = встроенный промпт)
	promptPath := resolvePromptPath(cfg, opts.PromptFile)
	promptFile, err := prompt.LoadOrDefault(promptPath)
	if err != nil {
		utils.Error("Prompt loading failed", "file", promptPath, "error", err)
		return nil, err
	}
	if promptPath != "" {
		utils.Info("Prompt template loaded", "file", promptPath)
	}

	// 5. S3 клиент для выгрузки датасетов (опционально)
	var s3Client *s3storage.Client
	if cfg.S3.Enabled {
		s3Client, err = s3storage.New(cfg.S3)
		if err != nil {
			utils.Error("S3 client creation failed", "error", err)
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			utils.Error("S3 bucket check failed", "bucket", cfg.S3.Bucket, "error", err)
			return nil, err
		}
		utils.Info("S3 client initialized", "bucket", cfg.S3.Bucket)
	}

	// 6. Собираем генератор
	gen, err := generator.New(generator.Options{
		Schema:     loadedSchema,
		SchemaFile: schemaFile,
		Provider:   provider,
		ModelName:  modelName,
		Prompt:     promptFile,
		RateLimit:  cfg.Generation.RateLimit,
		RateBurst:  cfg.Generation.RateBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	return &Components{
		Config:     cfg,
		Schema:     loadedSchema,
		SchemaFile: schemaFile,
		Registry:   registry,
		Provider:   provider,
		ModelDef:   modelDef,
		ModelName:  modelName,
		PromptFile: promptFile,
		Generator:  gen,
		Session:    session.NewManager(),
		S3:         s3Client,
	}, nil
}

// resolvePromptPath выбирает путь промпт-файла: флаг -prompt имеет приоритет
// над app.prompt_file из конфига. Голое имя ищется в prompts_dir.
//
// Пустой результат означает встроенный промпт.
func resolvePromptPath(cfg *config.AppConfig, flagValue string) string {
	name := flagValue
	if name == "" {
		name = cfg.App.PromptFile
	}
	if name == "" {
		return ""
	}
	if filepath.Base(name) != name {
		return name
	}
	return filepath.Join(cfg.App.PromptsDir, name)
}

// resolveAbsPath преобразует путь в абсолютный (если это не уже абсолютный путь).
func resolveAbsPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
