// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider — контракт для любого completion-сервиса.
//
// Генератор данных делает ровно один блокирующий вызов Chat на запуск.
// Правило 4: вся работа с моделью идёт только через этот интерфейс,
// что позволяет подменять провайдера детерминированной заглушкой в тестах.
type Provider interface {
	// Chat отправляет запрос и возвращает сырой текстовый ответ модели.
	//
	// Ответ может содержать пояснительный текст и markdown-обёртки —
	// извлечением JSON занимается пакет records, не провайдер.
	Chat(ctx context.Context, req ChatRequest) (string, error)
}
