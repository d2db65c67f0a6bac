package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/debug"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/events"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/prompt"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/records"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/schema"
)

// fakeProvider возвращает заготовленный ответ и запоминает запрос.
type fakeProvider struct {
	response string
	err      error
	gotReq   llm.ChatRequest
	calls    int
}

func (f *fakeProvider) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.gotReq = req
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func productSchema(t *testing.T) *schema.Schema {
	t.Helper()
	raw := `{
		"title": "Product",
		"type": "object",
		"properties": {
			"product_id": {"type": "integer", "description": "Unique product identifier"},
			"product_name": {"type": "string", "description": "Product name"},
			"price": {"type": "number", "description": "Product price in USD", "minimum": 0}
		},
		"required": ["product_id", "product_name", "price"]
	}`
	var s schema.Schema
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("failed to parse test schema: %v", err)
	}
	return &s
}

func TestGenerateParsesProviderResponse(t *testing.T) {
	provider := &fakeProvider{response: debug.SampleProductResponse()}
	gen, err := New(Options{
		Schema:    productSchema(t),
		Provider:  provider,
		ModelName: "fast",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := gen.Generate(context.Background(), prompt.GenerationRequest{
		Prompt:  "three gadgets",
		Records: 3,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(result.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(result.Records))
	}
	if result.Raw != debug.SampleProductResponse() {
		t.Error("Raw should keep the provider response verbatim")
	}
	if result.Duration <= 0 {
		t.Error("Duration should be positive")
	}

	if provider.calls != 1 {
		t.Errorf("expected exactly one LLM call, got %d", provider.calls)
	}
	if len(provider.gotReq.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(provider.gotReq.Messages))
	}
	if provider.gotReq.Messages[0].Role != llm.RoleSystem {
		t.Errorf("first message role = %q, want system", provider.gotReq.Messages[0].Role)
	}
	if !strings.Contains(provider.gotReq.Messages[1].Content, "three gadgets") {
		t.Error("user message should contain the prompt text")
	}
}

func TestGeneratePreviewFollowsSchemaOrder(t *testing.T) {
	provider := &fakeProvider{response: debug.SampleProductResponse()}
	gen, err := New(Options{Schema: productSchema(t), Provider: provider})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := gen.Generate(context.Background(), prompt.GenerationRequest{Prompt: "gadgets", Records: 3})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	idPos := strings.Index(result.Preview, `"product_id"`)
	namePos := strings.Index(result.Preview, `"product_name"`)
	pricePos := strings.Index(result.Preview, `"price"`)
	if idPos < 0 || namePos < 0 || pricePos < 0 {
		t.Fatalf("preview misses schema fields:\n%s", result.Preview)
	}
	if !(idPos < namePos && namePos < pricePos) {
		t.Errorf("preview fields out of schema order:\n%s", result.Preview)
	}
	if !strings.Contains(result.Preview, `"price": 89.99`) {
		t.Errorf("preview should keep numbers verbatim:\n%s", result.Preview)
	}
}

func TestGenerateProviderError(t *testing.T) {
	wantErr := fmt.Errorf("connection refused")
	provider := &fakeProvider{err: wantErr}
	gen, err := New(Options{Schema: productSchema(t), Provider: provider})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = gen.Generate(context.Background(), prompt.GenerationRequest{Prompt: "gadgets", Records: 3})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected provider error to propagate, got %v", err)
	}
}

func TestGenerateParseErrorKeepsRawResponse(t *testing.T) {
	provider := &fakeProvider{response: debug.SampleRefusal()}
	gen, err := New(Options{Schema: productSchema(t), Provider: provider})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = gen.Generate(context.Background(), prompt.GenerationRequest{Prompt: "gadgets", Records: 3})
	if !errors.Is(err, records.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}

	raw, ok := records.RawResponse(err)
	if !ok {
		t.Fatal("parse error should carry the raw response")
	}
	if raw != debug.SampleRefusal() {
		t.Errorf("raw response = %q, want the refusal text", raw)
	}
}

func TestGenerateRejectsEmptyRequest(t *testing.T) {
	provider := &fakeProvider{response: debug.SampleProductResponse()}
	gen, err := New(Options{Schema: productSchema(t), Provider: provider})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = gen.Generate(context.Background(), prompt.GenerationRequest{Prompt: "gadgets", Records: 0})
	if err == nil {
		t.Fatal("expected error for zero records")
	}
	if provider.calls != 0 {
		t.Error("LLM should not be called when request validation fails")
	}
}

func TestGenerateEmitsEventsInOrder(t *testing.T) {
	provider := &fakeProvider{response: debug.SampleProductResponse()}
	gen, err := New(Options{Schema: productSchema(t), Provider: provider, ModelName: "fast"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	emitter := events.NewChanEmitter(16)
	gen.SetEmitter(emitter)
	sub := emitter.Subscribe()

	if _, err := gen.Generate(context.Background(), prompt.GenerationRequest{Prompt: "gadgets", Records: 3}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	emitter.Close()

	var got []events.EventType
	for event := range sub.Events() {
		got = append(got, event.Type)
	}

	want := []events.EventType{events.EventGenerating, events.EventRecords, events.EventDone}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGenerateEmitsErrorEvent(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("boom")}
	gen, err := New(Options{Schema: productSchema(t), Provider: provider})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	emitter := events.NewChanEmitter(16)
	gen.SetEmitter(emitter)
	sub := emitter.Subscribe()

	if _, err := gen.Generate(context.Background(), prompt.GenerationRequest{Prompt: "gadgets", Records: 3}); err == nil {
		t.Fatal("expected error")
	}
	emitter.Close()

	sawError := false
	for event := range sub.Events() {
		if event.Type == events.EventError {
			sawError = true
			data, ok := event.Data.(events.ErrorData)
			if !ok {
				t.Fatalf("EventError data type = %T", event.Data)
			}
			if data.Err == nil {
				t.Error("ErrorData should carry the error")
			}
		}
	}
	if !sawError {
		t.Error("expected EventError after provider failure")
	}
}

func TestGenerateRecordsDebugTrace(t *testing.T) {
	logsDir := t.TempDir()
	recorder, err := debug.NewRecorder(debug.RecorderConfig{LogsDir: logsDir, IncludeMessages: true})
	if err != nil {
		t.Fatalf("NewRecorder failed: %v", err)
	}

	provider := &fakeProvider{response: debug.SampleProductResponse()}
	gen, err := New(Options{
		Schema:     productSchema(t),
		SchemaFile: "schemas/product_schema.json",
		Provider:   provider,
		ModelName:  "fast",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	gen.SetRecorder(recorder)

	result, err := gen.Generate(context.Background(), prompt.GenerationRequest{Prompt: "three gadgets", Records: 3})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tracePath, err := recorder.Finalize(result.Duration)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("failed to read trace: %v", err)
	}

	var trace debug.GenerationTrace
	if err := json.Unmarshal(data, &trace); err != nil {
		t.Fatalf("trace is not valid JSON: %v", err)
	}
	if trace.SchemaFile != "schemas/product_schema.json" {
		t.Errorf("SchemaFile = %q", trace.SchemaFile)
	}
	if trace.Model != "fast" {
		t.Errorf("Model = %q", trace.Model)
	}
	if trace.LLMRequest.MessagesCount != 2 {
		t.Error("trace should record the request with two messages")
	}
	if trace.Parse.Records != 3 {
		t.Error("trace should record three parsed records")
	}
	if trace.Error != "" {
		t.Errorf("successful run should leave Error empty, got %q", trace.Error)
	}
	if filepath.Dir(tracePath) != logsDir {
		t.Errorf("trace written outside logs dir: %s", tracePath)
	}
}

func TestGenerateHonorsPromptConfig(t *testing.T) {
	promptFile := prompt.Default()
	promptFile.Config.Model = "gpt-4o-mini"
	promptFile.Config.Temperature = 0.9
	promptFile.Config.MaxTokens = 2048

	provider := &fakeProvider{response: debug.SampleProductResponse()}
	gen, err := New(Options{Schema: productSchema(t), Provider: provider, Prompt: promptFile})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := gen.Generate(context.Background(), prompt.GenerationRequest{Prompt: "gadgets", Records: 3}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if provider.gotReq.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, want gpt-4o-mini", provider.gotReq.Model)
	}
	if provider.gotReq.Temperature != 0.9 {
		t.Errorf("Temperature = %v, want 0.9", provider.gotReq.Temperature)
	}
	if provider.gotReq.MaxTokens != 2048 {
		t.Errorf("MaxTokens = %d, want 2048", provider.gotReq.MaxTokens)
	}
}

func TestGenerateCallOptionsOverridePromptConfig(t *testing.T) {
	promptFile := prompt.Default()
	promptFile.Config.Temperature = 0.9
	promptFile.Config.MaxTokens = 2048

	provider := &fakeProvider{response: debug.SampleProductResponse()}
	gen, err := New(Options{Schema: productSchema(t), Provider: provider, Prompt: promptFile})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = gen.Generate(context.Background(),
		prompt.GenerationRequest{Prompt: "gadgets", Records: 3},
		llm.WithTemperature(0.2),
		llm.WithMaxTokens(512),
	)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if provider.gotReq.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want the per-call override 0.2", provider.gotReq.Temperature)
	}
	if provider.gotReq.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want the per-call override 512", provider.gotReq.MaxTokens)
	}
}

func TestGenerateRateLimiterDelaysSecondCall(t *testing.T) {
	provider := &fakeProvider{response: debug.SampleProductResponse()}
	gen, err := New(Options{
		Schema:    productSchema(t),
		Provider:  provider,
		RateLimit: 20, // 50ms между запросами
		RateBurst: 1,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	req := prompt.GenerationRequest{Prompt: "gadgets", Records: 3}
	if _, err := gen.Generate(context.Background(), req); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}

	started := time.Now()
	if _, err := gen.Generate(context.Background(), req); err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}
	if elapsed := time.Since(started); elapsed < 30*time.Millisecond {
		t.Errorf("second call finished in %v, limiter should have delayed it", elapsed)
	}
}

func TestNewValidatesDependencies(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"nil schema", Options{Provider: &fakeProvider{}}},
		{"nil provider", Options{Schema: &schema.Schema{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}
