// Package factory создает LLM провайдеров из конфигурации.
//
// Единственное место где имя провайдера из config.yaml превращается
// в конкретную реализацию llm.Provider.
package factory

import (
	"fmt"

	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/config"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm"
	"github.com/k00baPriv/Synthetic-Data-Generation/pkg/llm/openai"
)

// NewLLMProvider создает провайдера на основе конфигурации модели.
//
// Все поддерживаемые провайдеры говорят по OpenAI-совместимому API
// и отличаются только base_url и именем модели.
func NewLLMProvider(modelDef config.ModelDef) (llm.Provider, error) {
	switch modelDef.Provider {
	case "openai", "deepseek", "zai", "openrouter":
		return openai.NewClient(modelDef), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", modelDef.Provider)
	}
}
