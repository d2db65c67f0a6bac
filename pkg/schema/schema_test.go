package schema

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const productSchemaJSON = `{
  "title": "Product Catalog",
  "type": "object",
  "properties": {
    "product_id": {"type": "integer", "description": "Unique product identifier", "example": 1001},
    "product_name": {"type": "string", "description": "Name of the product", "example": "Wireless Headphones"},
    "category": {"type": "string", "description": "Product category", "example": "Electronics"},
    "brand": {"type": "string", "description": "Product brand", "example": "TechSound"},
    "price": {"type": "number", "description": "Product price in USD", "example": 99.99, "minimum": 0},
    "stock_quantity": {"type": "integer", "description": "Units in stock", "example": 150, "minimum": 0},
    "is_available": {"type": "boolean", "description": "Whether the product is available", "example": true},
    "release_date": {"type": "string", "description": "Release date in YYYY-MM-DD format", "example": "2023-06-15"},
    "rating": {"type": "number", "description": "Average customer rating", "example": 4.5, "minimum": 0, "maximum": 5}
  },
  "required": ["product_id", "product_name", "price"]
}`

func writeSchemaFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write schema file: %v", err)
	}
	return path
}

func TestLoadPreservesPropertyOrder(t *testing.T) {
	path := writeSchemaFile(t, productSchemaJSON)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{
		"product_id", "product_name", "category", "brand", "price",
		"stock_quantity", "is_available", "release_date", "rating",
	}
	got := s.PropertyNames()
	if len(got) != len(want) {
		t.Fatalf("PropertyNames() returned %d names, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("PropertyNames()[%d] = %q, want %q", i, got[i], name)
		}
	}
}

func TestLoadParsesDescriptors(t *testing.T) {
	path := writeSchemaFile(t, productSchemaJSON)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Title != "Product Catalog" {
		t.Errorf("Title = %q, want %q", s.Title, "Product Catalog")
	}

	price, ok := s.Get("price")
	if !ok {
		t.Fatal("Get(price) returned false")
	}
	if price.Type != "number" {
		t.Errorf("price.Type = %q, want %q", price.Type, "number")
	}
	if price.Description != "Product price in USD" {
		t.Errorf("price.Description = %q", price.Description)
	}
	if price.Minimum == nil || *price.Minimum != 0 {
		t.Errorf("price.Minimum = %v, want 0", price.Minimum)
	}
	if price.Maximum != nil {
		t.Errorf("price.Maximum = %v, want nil", price.Maximum)
	}

	// UseNumber сохраняет 99.99 как json.Number, а не float64.
	if num, ok := price.Example.(json.Number); !ok || num.String() != "99.99" {
		t.Errorf("price.Example = %v (%T), want json.Number 99.99", price.Example, price.Example)
	}

	rating, _ := s.Get("rating")
	if rating.Maximum == nil || *rating.Maximum != 5 {
		t.Errorf("rating.Maximum = %v, want 5", rating.Maximum)
	}

	if !s.IsRequired("product_id") {
		t.Error("IsRequired(product_id) = false, want true")
	}
	if s.IsRequired("rating") {
		t.Error("IsRequired(rating) = true, want false")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid JSON",
			content: `{"properties": {`,
			wantErr: "failed to parse",
		},
		{
			name:    "no properties key",
			content: `{"title": "Empty"}`,
			wantErr: "no properties",
		},
		{
			name:    "empty properties object",
			content: `{"properties": {}}`,
			wantErr: "no properties",
		},
		{
			name:    "properties is array",
			content: `{"properties": [{"name": "a"}]}`,
			wantErr: "properties must be a JSON object",
		},
		{
			name:    "property descriptor is scalar",
			content: `{"properties": {"a": "string"}}`,
			wantErr: "invalid descriptor for property 'a'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSchemaFile(t, tt.content)
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

func TestLoadEmptySchemaIsErrNoProperties(t *testing.T) {
	path := writeSchemaFile(t, `{"properties": {}}`)

	_, err := Load(path)
	if !errors.Is(err, ErrNoProperties) {
		t.Errorf("Load() error = %v, want ErrNoProperties", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load() error = %q, want 'not found'", err.Error())
	}
}

func TestResolve(t *testing.T) {
	schemasDir := t.TempDir()
	inDir := filepath.Join(schemasDir, "product_schema.json")
	if err := os.WriteFile(inDir, []byte(productSchemaJSON), 0644); err != nil {
		t.Fatalf("failed to write schema file: %v", err)
	}

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{
			name: "bare name found in schemas dir",
			arg:  "product_schema.json",
			want: inDir,
		},
		{
			name: "bare name missing from schemas dir",
			arg:  "unknown.json",
			want: "unknown.json",
		},
		{
			name: "explicit path used as is",
			arg:  filepath.Join("somewhere", "custom.json"),
			want: filepath.Join("somewhere", "custom.json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.arg, schemasDir)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestDumpKeepsDeclarationOrder(t *testing.T) {
	path := writeSchemaFile(t, productSchemaJSON)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dump, err := s.Dump()
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	// Поля в дампе идут в порядке объявления.
	prev := -1
	for _, name := range s.PropertyNames() {
		idx := strings.Index(dump, `"`+name+`"`)
		if idx < 0 {
			t.Fatalf("Dump() missing property %q", name)
		}
		if idx < prev {
			t.Errorf("Dump() property %q appears out of order", name)
		}
		prev = idx
	}

	// Дамп остается валидным JSON.
	var check map[string]any
	if err := json.Unmarshal([]byte(dump), &check); err != nil {
		t.Errorf("Dump() produced invalid JSON: %v", err)
	}
}
