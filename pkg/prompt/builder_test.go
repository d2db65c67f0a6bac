package prompt

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/schema"
)

func productSchema(t *testing.T) *schema.Schema {
	t.Helper()
	raw := `{
		"title": "Product Catalog",
		"type": "object",
		"properties": {
			"product_id": {"type": "integer", "description": "Unique product identifier", "example": 1001},
			"product_name": {"type": "string", "description": "Name of the product", "example": "Wireless Headphones"},
			"price": {"type": "number", "description": "Product price in USD", "example": 99.99, "minimum": 0},
			"rating": {"type": "number", "description": "Average customer rating", "example": 4.5, "minimum": 0, "maximum": 5}
		}
	}`
	var s schema.Schema
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("failed to parse test schema: %v", err)
	}
	return &s
}

func TestBuildMessagesListsEveryField(t *testing.T) {
	s := productSchema(t)
	req := GenerationRequest{Prompt: "realistic electronics for an online store", Records: 5}

	messages, err := Default().BuildMessages(s, req)
	if err != nil {
		t.Fatalf("BuildMessages() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("BuildMessages() returned %d messages, want 2", len(messages))
	}

	system := messages[0]
	if system.Role != llm.RoleSystem {
		t.Errorf("messages[0].Role = %q, want %q", system.Role, llm.RoleSystem)
	}

	wantLines := []string{
		"- product_id (integer): Unique product identifier | Example: 1001",
		"- product_name (string): Name of the product | Example: Wireless Headphones",
		"- price (number): Product price in USD | Example: 99.99 | Constraints: min: 0",
		"- rating (number): Average customer rating | Example: 4.5 | Constraints: min: 0, max: 5",
	}
	for _, line := range wantLines {
		if !strings.Contains(system.Content, line) {
			t.Errorf("system message missing line %q", line)
		}
	}

	// Схема целиком присутствует в промпте как JSON
	if !strings.Contains(system.Content, `"title": "Product Catalog"`) {
		t.Error("system message missing schema dump")
	}

	// Требование строгого JSON массива
	if !strings.Contains(system.Content, "Return ONLY a JSON array") {
		t.Error("system message missing strict JSON array instruction")
	}

	user := messages[1]
	if user.Role != llm.RoleUser {
		t.Errorf("messages[1].Role = %q, want %q", user.Role, llm.RoleUser)
	}
	if !strings.Contains(user.Content, "realistic electronics for an online store") {
		t.Error("user message missing the free-form prompt")
	}
	if !strings.Contains(user.Content, "Generate exactly 5 records.") {
		t.Error("user message missing the record count")
	}
}

func TestBuildMessagesEmptySchema(t *testing.T) {
	tests := []struct {
		name string
		s    *schema.Schema
	}{
		{name: "nil schema", s: nil},
		{name: "schema without properties", s: &schema.Schema{Title: "Empty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Default().BuildMessages(tt.s, GenerationRequest{Prompt: "x", Records: 5})
			if !errors.Is(err, ErrEmptySchema) {
				t.Errorf("BuildMessages() error = %v, want ErrEmptySchema", err)
			}
		})
	}
}

func TestBuildMessagesRejectsNonPositiveCount(t *testing.T) {
	s := productSchema(t)

	for _, records := range []int{0, -3} {
		_, err := Default().BuildMessages(s, GenerationRequest{Prompt: "x", Records: records})
		if err == nil {
			t.Errorf("BuildMessages(records=%d) expected error, got nil", records)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	s := productSchema(t)
	req := GenerationRequest{Prompt: "ten laptops", Records: 3}

	first, err := Build(s, req)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := Build(s, req)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if first != second {
		t.Error("Build() is not deterministic for identical inputs")
	}
	if !strings.Contains(first, "Generate exactly 3 records.") {
		t.Error("Build() missing record count")
	}
}

func TestFieldListOmitsEmptyBlocks(t *testing.T) {
	raw := `{"properties": {"note": {"type": "string"}}}`
	var s schema.Schema
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("failed to parse test schema: %v", err)
	}

	got := fieldList(&s)
	want := "- note (string): No description"
	if got != want {
		t.Errorf("fieldList() = %q, want %q", got, want)
	}
}
