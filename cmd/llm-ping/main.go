// llm-ping — утилита для проверки доступности модели из конфига.
//
// Делает один короткий запрос к модели и печатает задержку.
// Удобно проверять ключи и base_url перед долгой генерацией.
//
// Использование:
//
//	./llm-ping
//	./llm-ping -model smart
//	./llm-ping -config path/to/config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/app"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm/openai"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/models"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to config.yaml (default: ./config.yaml)")
		modelName  = flag.String("model", "", "Model alias to ping (default: models.default)")
		timeout    = flag.Duration("timeout", 15*time.Second, "Ping timeout")
	)
	flag.Parse()

	// .env опционален: ключи могут прийти из обычного окружения
	_ = godotenv.Load()

	cfg, cfgPath, err := app.InitializeConfig(&app.DefaultConfigPathFinder{ConfigFlag: *configPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	registry, err := models.NewRegistryFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Registry error: %v\n", err)
		os.Exit(1)
	}

	provider, modelDef, resolved, err := registry.GetWithFallback(*modelName, cfg.Models.Default)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Model error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Available models: %s\n", strings.Join(registry.ListNames(), ", "))
		os.Exit(1)
	}

	fmt.Printf("🔍 Pinging %s (%s via %s)\n", resolved, modelDef.ModelName, modelDef.Provider)
	fmt.Printf("   Config: %s\n\n", cfgPath)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	started := time.Now()
	reply, err := provider.Chat(ctx, llm.ChatRequest{
		MaxTokens: 8,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: "Reply with exactly one word: pong"},
		},
	})
	latency := time.Since(started)

	if err != nil {
		fmt.Println("❌ Status: UNAVAILABLE")
		fmt.Printf("   Error Type: %s\n", openai.ClassifyError(err))
		fmt.Printf("   Error: %v\n", err)
		fmt.Printf("   Latency: %dms\n", latency.Milliseconds())
		os.Exit(1)
	}

	fmt.Println("✅ Status: AVAILABLE")
	fmt.Printf("   Model: %s\n", modelDef.ModelName)
	fmt.Printf("   Latency: %dms\n", latency.Milliseconds())
	fmt.Printf("   Reply: %s\n", strings.TrimSpace(reply))
}
