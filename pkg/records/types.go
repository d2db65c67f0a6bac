package records

// Record — одна сгенерированная запись.
//
// Значения хранятся как после JSON разбора: string, bool,
// json.Number для чисел, вложенные map и slice для сложных полей.
// json.Number сохраняет числа в исходном виде ("9.99" остается "9.99"),
// что важно при записи в CSV.
type Record map[string]any

// RecordSet — набор записей одной генерации в порядке ответа модели.
type RecordSet []Record
