package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPromptYAML = `config:
  model: "deepseek-chat"
  temperature: 0.9
  max_tokens: 2048
messages:
  - role: system
    content: "Describe {{.Title}} fields:\n{{.FieldList}}"
  - role: user
    content: "{{.Prompt}} ({{.Records}} records)"
`

func writePromptFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "generation.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write prompt file: %v", err)
	}
	return path
}

func TestLoadParsesConfigAndMessages(t *testing.T) {
	path := writePromptFile(t, testPromptYAML)

	pf, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if pf.Config.Model != "deepseek-chat" {
		t.Errorf("Config.Model = %q, want %q", pf.Config.Model, "deepseek-chat")
	}
	if pf.Config.Temperature != 0.9 {
		t.Errorf("Config.Temperature = %v, want 0.9", pf.Config.Temperature)
	}
	if pf.Config.MaxTokens != 2048 {
		t.Errorf("Config.MaxTokens = %d, want 2048", pf.Config.MaxTokens)
	}
	if len(pf.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(pf.Messages))
	}
	if pf.Messages[0].Role != "system" {
		t.Errorf("Messages[0].Role = %q, want system", pf.Messages[0].Role)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "broken yaml",
			content: "messages: [role: system",
			wantErr: "yaml parse error",
		},
		{
			name:    "no messages",
			content: "config:\n  model: test\n",
			wantErr: "no messages",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePromptFile(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load() error = %v, want 'not found'", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file falls back to default", func(t *testing.T) {
		pf, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if len(pf.Messages) != 2 {
			t.Errorf("default prompt has %d messages, want 2", len(pf.Messages))
		}
	})

	t.Run("empty path falls back to default", func(t *testing.T) {
		pf, err := LoadOrDefault("")
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if len(pf.Messages) == 0 {
			t.Error("default prompt has no messages")
		}
	})

	t.Run("broken file is an error", func(t *testing.T) {
		path := writePromptFile(t, "messages: [role: system")
		if _, err := LoadOrDefault(path); err == nil {
			t.Error("LoadOrDefault() expected error for broken yaml")
		}
	})
}

func TestRenderMessagesSubstitutesVariables(t *testing.T) {
	path := writePromptFile(t, testPromptYAML)
	pf, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rendered, err := pf.RenderMessages(TemplateData{
		Title:     "Products",
		FieldList: "- price (number): Product price",
		Records:   7,
		Prompt:    "cheap accessories",
	})
	if err != nil {
		t.Fatalf("RenderMessages() error = %v", err)
	}

	if !strings.Contains(rendered[0].Content, "Describe Products fields:") {
		t.Errorf("rendered[0] = %q, missing title", rendered[0].Content)
	}
	if !strings.Contains(rendered[0].Content, "- price (number): Product price") {
		t.Errorf("rendered[0] = %q, missing field list", rendered[0].Content)
	}
	if rendered[1].Content != "cheap accessories (7 records)" {
		t.Errorf("rendered[1] = %q", rendered[1].Content)
	}
}

func TestRenderMessagesBadTemplate(t *testing.T) {
	pf := &PromptFile{Messages: []Message{{Role: "system", Content: "{{.Broken"}}}

	_, err := pf.RenderMessages(TemplateData{})
	if err == nil || !strings.Contains(err.Error(), "template parse error") {
		t.Errorf("RenderMessages() error = %v, want template parse error", err)
	}
}
