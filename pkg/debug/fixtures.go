// Тестовые данные для прогонов без реального API.
//
// Rule 6: Тестовые данные вынесены из entry point в отдельный пакет.
package debug

// SampleProductResponse возвращает типичный ответ модели для оффлайн прогона.
//
// Имитирует реальное поведение: JSON массив обёрнут в markdown блок
// и сопровождается пояснительным текстом. Используется в
// examples/offline-demo для демонстрации конвейера без API вызова.
func SampleProductResponse() string {
	return "Here are the generated records:\n```json\n" +
		`[
  {"product_id": 1001, "product_name": "Wireless Headphones X200", "category": "Electronics", "brand": "TechSound", "price": 89.99, "stock_quantity": 150, "is_available": true, "release_date": "2023-06-15", "rating": 4.5},
  {"product_id": 1002, "product_name": "Smart Watch Pulse", "category": "Electronics", "brand": "FitTech", "price": 199.5, "stock_quantity": 80, "is_available": true, "release_date": "2024-02-01", "rating": 4.2},
  {"product_id": 1003, "product_name": "USB-C Charging Cable", "category": "Accessories", "brand": "TechSound", "price": 12.99, "stock_quantity": 520, "is_available": false, "release_date": "2022-11-30", "rating": 4.8}
]` + "\n```\nLet me know if you need more records."
}

// SampleRefusal возвращает ответ-отказ без JSON массива.
//
// Используется в тестах разбора: такой ответ должен давать
// ошибку разбора с сырым текстом внутри.
func SampleRefusal() string {
	return "Sorry, I cannot help."
}
