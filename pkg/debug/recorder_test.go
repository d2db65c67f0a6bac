package debug

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRecorderWritesFullTrace(t *testing.T) {
	dir := t.TempDir()

	recorder, err := NewRecorder(RecorderConfig{LogsDir: dir, IncludeMessages: true})
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	recorder.Start("schemas/product_schema.json", "fast", "realistic electronics", 5)
	recorder.RecordRequest(LLMRequest{
		Model:         "deepseek-chat",
		Temperature:   0.9,
		MaxTokens:     4096,
		MessagesCount: 2,
		Messages: []MessageEntry{
			{Role: "system", Content: "You are a test data generator."},
			{Role: "user", Content: "Generate exactly 5 records."},
		},
	})
	recorder.RecordResponse(LLMResponse{Content: `[{"a": 1}]`, Duration: 1200})
	recorder.RecordParse(ParseResult{Records: 5})
	recorder.RecordSaved("output/products.csv", 5)

	path, err := recorder.Finalize(3 * time.Second)
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read trace file: %v", err)
	}

	var trace GenerationTrace
	if err := json.Unmarshal(data, &trace); err != nil {
		t.Fatalf("trace file is not valid JSON: %v", err)
	}

	if trace.RunID != recorder.GetRunID() {
		t.Errorf("RunID = %q, want %q", trace.RunID, recorder.GetRunID())
	}
	if !strings.HasPrefix(trace.RunID, "debug_") {
		t.Errorf("RunID = %q, want debug_ prefix", trace.RunID)
	}
	if trace.SchemaFile != "schemas/product_schema.json" {
		t.Errorf("SchemaFile = %q", trace.SchemaFile)
	}
	if trace.Requested != 5 {
		t.Errorf("Requested = %d, want 5", trace.Requested)
	}
	if trace.Duration != 3000 {
		t.Errorf("Duration = %d, want 3000", trace.Duration)
	}
	if len(trace.LLMRequest.Messages) != 2 {
		t.Errorf("LLMRequest.Messages has %d entries, want 2", len(trace.LLMRequest.Messages))
	}
	if trace.Parse.Records != 5 {
		t.Errorf("Parse.Records = %d, want 5", trace.Parse.Records)
	}
	if trace.Saved == nil || trace.Saved.Path != "output/products.csv" {
		t.Errorf("Saved = %+v", trace.Saved)
	}
	if trace.Error != "" {
		t.Errorf("Error = %q, want empty", trace.Error)
	}
}

func TestRecorderExcludesMessagesByDefault(t *testing.T) {
	recorder, err := NewRecorder(RecorderConfig{LogsDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	recorder.RecordRequest(LLMRequest{
		MessagesCount: 2,
		Messages:      []MessageEntry{{Role: "system", Content: "secret prompt"}},
	})

	path, err := recorder.Finalize(time.Second)
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret prompt") {
		t.Error("trace contains message content despite IncludeMessages=false")
	}
}

func TestRecorderTruncatesLongResponses(t *testing.T) {
	recorder, err := NewRecorder(RecorderConfig{LogsDir: t.TempDir(), MaxResponseSize: 10})
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	recorder.RecordResponse(LLMResponse{Content: strings.Repeat("x", 100)})

	path, err := recorder.Finalize(time.Second)
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var trace GenerationTrace
	if err := json.Unmarshal(data, &trace); err != nil {
		t.Fatal(err)
	}
	if !trace.LLMResponse.Truncated {
		t.Error("Truncated = false, want true")
	}
	if !strings.HasSuffix(trace.LLMResponse.Content, "... (truncated)") {
		t.Errorf("Content = %q, want truncation suffix", trace.LLMResponse.Content)
	}
}

func TestRecorderCapturesParseError(t *testing.T) {
	recorder, err := NewRecorder(RecorderConfig{LogsDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	recorder.RecordParse(ParseResult{Records: 0, Error: "no JSON array found in response"})

	path, err := recorder.Finalize(time.Second)
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var trace GenerationTrace
	if err := json.Unmarshal(data, &trace); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(trace.Error, "no JSON array") {
		t.Errorf("Error = %q, want parse error", trace.Error)
	}
}
