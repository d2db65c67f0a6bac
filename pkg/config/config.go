package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	Models     ModelsConfig     `yaml:"models"`
	Generation GenerationConfig `yaml:"generation"`
	S3         S3Config         `yaml:"s3"`
	App        AppSpecific      `yaml:"app"`
}

// ModelsConfig — настройки AI моделей.
type ModelsConfig struct {
	Default     string              `yaml:"default"`     // Алиас модели по умолчанию (например, "fast")
	Definitions map[string]ModelDef `yaml:"definitions"` // Словарь определений моделей
}

// ModelDef — параметры конкретной модели.
type ModelDef struct {
	Provider    string  `yaml:"provider"`   // "openai", "deepseek", "zai"
	ModelName   string  `yaml:"model_name"` // Реальное имя в API
	APIKey      string  `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL     string  `yaml:"base_url"`   // Пусто = дефолтный endpoint провайдера
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"` // Например "90s", парсится time.ParseDuration
}

// GenerationConfig — настройки процесса генерации.
type GenerationConfig struct {
	DefaultRecords int     `yaml:"default_records"` // Сколько записей просить если пользователь не указал
	RateLimit      float64 `yaml:"rate_limit"`      // Запросов в секунду между генерациями (0 = без лимита)
	RateBurst      int     `yaml:"rate_burst"`      // Burst для rate limiter
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *GenerationConfig) GetDefaults() GenerationConfig {
	result := *c

	if result.DefaultRecords == 0 {
		result.DefaultRecords = 5
	}
	if result.RateBurst == 0 {
		result.RateBurst = 1
	}

	return result
}

// S3Config — настройки объектного хранилища для экспорта CSV.
type S3Config struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug       bool   `yaml:"debug"`
	SchemasDir  string `yaml:"schemas_dir"`  // Где искать схемы по голому имени
	OutputDir   string `yaml:"output_dir"`   // Куда класть CSV с голым именем файла
	PromptsDir  string `yaml:"prompts_dir"`  // Директория YAML шаблонов промптов
	PromptFile  string `yaml:"prompt_file"`  // Имя кастомного шаблона (пусто = встроенный)
	LogsDir     string `yaml:"logs_dir"`     // Директория debug-трейсов
	ColorScheme string `yaml:"color_scheme"` // Цветовая схема TUI
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *AppSpecific) GetDefaults() AppSpecific {
	result := *c

	if result.SchemasDir == "" {
		result.SchemasDir = "schemas"
	}
	if result.OutputDir == "" {
		result.OutputDir = "output"
	}
	if result.PromptsDir == "" {
		result.PromptsDir = "prompts"
	}
	if result.LogsDir == "" {
		result.LogsDir = "logs"
	}
	if result.ColorScheme == "" {
		result.ColorScheme = "default"
	}

	return result
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Применяем дефолты
	cfg.Generation = cfg.Generation.GetDefaults()
	cfg.App = cfg.App.GetDefaults()

	// 6. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля.
//
// Пустой api_key после подстановки ENV — фатальная ошибка конфигурации:
// без ключа провайдер бесполезен, падаем сразу а не на первом запросе.
func (c *AppConfig) validate() error {
	if len(c.Models.Definitions) == 0 {
		return fmt.Errorf("models.definitions is required")
	}
	if c.Models.Default == "" {
		return fmt.Errorf("models.default is required")
	}
	if _, ok := c.Models.Definitions[c.Models.Default]; !ok {
		return fmt.Errorf("default model '%s' is not defined in definitions", c.Models.Default)
	}

	for name, def := range c.Models.Definitions {
		if def.Provider == "" {
			return fmt.Errorf("model '%s': provider is required", name)
		}
		if def.ModelName == "" {
			return fmt.Errorf("model '%s': model_name is required", name)
		}
		if def.APIKey == "" {
			return fmt.Errorf("model '%s': api_key is empty after env expansion (set the key in your environment or .env)", name)
		}
		if def.Timeout != "" {
			if _, err := time.ParseDuration(def.Timeout); err != nil {
				return fmt.Errorf("model '%s': invalid timeout format: %w", name, err)
			}
		}
	}

	if c.S3.Enabled {
		if c.S3.Endpoint == "" {
			return fmt.Errorf("s3.endpoint is required when s3.enabled is true")
		}
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required when s3.enabled is true")
		}
	}

	return nil
}

// Helper методы для удобства доступа (Syntactic sugar)

// GetModel возвращает конфигурацию модели по имени или модель по умолчанию.
func (c *AppConfig) GetModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.Default
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}
