package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig сохраняет YAML во временный файл и возвращает путь.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	return path
}

const validConfig = `
models:
  default: fast
  definitions:
    fast:
      provider: openai
      model_name: gpt-4o-mini
      api_key: "${TEST_DATAGEN_KEY}"
      temperature: 0.7
      max_tokens: 4000
      timeout: 90s
generation:
  default_records: 10
app:
  schemas_dir: my_schemas
`

func TestLoadExpandsEnvAndAppliesDefaults(t *testing.T) {
	t.Setenv("TEST_DATAGEN_KEY", "sk-test-123")

	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def, ok := cfg.GetModel("")
	if !ok {
		t.Fatal("GetModel(\"\") did not resolve the default model")
	}
	if def.APIKey != "sk-test-123" {
		t.Errorf("api_key = %q, want expanded env value", def.APIKey)
	}
	if def.ModelName != "gpt-4o-mini" {
		t.Errorf("model_name = %q, want gpt-4o-mini", def.ModelName)
	}

	// Явное значение сохраняется, остальное добивается дефолтами
	if cfg.Generation.DefaultRecords != 10 {
		t.Errorf("default_records = %d, want 10", cfg.Generation.DefaultRecords)
	}
	if cfg.Generation.RateBurst != 1 {
		t.Errorf("rate_burst default = %d, want 1", cfg.Generation.RateBurst)
	}
	if cfg.App.SchemasDir != "my_schemas" {
		t.Errorf("schemas_dir = %q, want my_schemas", cfg.App.SchemasDir)
	}
	if cfg.App.OutputDir != "output" {
		t.Errorf("output_dir default = %q, want output", cfg.App.OutputDir)
	}
	if cfg.App.PromptsDir != "prompts" {
		t.Errorf("prompts_dir default = %q, want prompts", cfg.App.PromptsDir)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing api key env",
			content: `
models:
  default: fast
  definitions:
    fast:
      provider: openai
      model_name: gpt-4o-mini
      api_key: "${TEST_DATAGEN_MISSING_KEY}"
`,
			wantErr: "api_key is empty",
		},
		{
			name: "default model not defined",
			content: `
models:
  default: quality
  definitions:
    fast:
      provider: openai
      model_name: gpt-4o-mini
      api_key: sk-x
`,
			wantErr: "not defined in definitions",
		},
		{
			name: "no definitions",
			content: `
models:
  default: fast
`,
			wantErr: "definitions is required",
		},
		{
			name: "missing model name",
			content: `
models:
  default: fast
  definitions:
    fast:
      provider: openai
      api_key: sk-x
`,
			wantErr: "model_name is required",
		},
		{
			name: "invalid timeout",
			content: `
models:
  default: fast
  definitions:
    fast:
      provider: openai
      model_name: gpt-4o-mini
      api_key: sk-x
      timeout: ninety seconds
`,
			wantErr: "invalid timeout",
		},
		{
			name: "s3 enabled without endpoint",
			content: `
models:
  default: fast
  definitions:
    fast:
      provider: openai
      model_name: gpt-4o-mini
      api_key: sk-x
s3:
  enabled: true
  bucket: exports
`,
			wantErr: "s3.endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load() error = %q, want substring %q", err, "not found")
	}
}
