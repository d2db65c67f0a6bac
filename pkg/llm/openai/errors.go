package openai

import (
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrorType представляет тип ошибки при обращении к completion API.
type ErrorType int

const (
	ErrUnknown ErrorType = iota
	ErrAuthFailed
	ErrTimeout
	ErrNetwork
	ErrRateLimit
)

// String возвращает строковое представление типа ошибки.
func (e ErrorType) String() string {
	switch e {
	case ErrAuthFailed:
		return "authentication_failed"
	case ErrTimeout:
		return "timeout"
	case ErrNetwork:
		return "network_error"
	case ErrRateLimit:
		return "rate_limit"
	default:
		return "unknown"
	}
}

// HumanMessage возвращает человекочитаемое сообщение для типа ошибки.
//
// Используется в CLI/TUI для вывода пользователю вместо сырого текста ошибки.
func (e ErrorType) HumanMessage() string {
	switch e {
	case ErrAuthFailed:
		return "API key is invalid or missing. Check OPENAI_API_KEY in your environment or .env file."
	case ErrTimeout:
		return "The provider did not answer in time. Slow network or an overloaded endpoint."
	case ErrNetwork:
		return "The provider endpoint is unreachable. Check your connection and base_url in config.yaml."
	case ErrRateLimit:
		return "Request limit exceeded. Wait a moment before the next generation."
	default:
		return "Unknown error while calling the completion provider."
	}
}

// ClassifyError классифицирует ошибку по типу для лучшей диагностики.
//
// Сначала проверяет типизированные ошибки SDK (openai.APIError с HTTP
// статусом), затем анализирует текст ошибки:
//   - ErrAuthFailed: 401/403, unauthorized, invalid api key
//   - ErrRateLimit: 429, too many requests
//   - ErrTimeout: timeout, deadline exceeded
//   - ErrNetwork: connection refused, no such host
//   - ErrUnknown: все остальные
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrUnknown
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return ErrAuthFailed
		case 429:
			return ErrRateLimit
		}
	}

	errMsg := err.Error()
	errMsgLower := strings.ToLower(errMsg)

	// Проверка ошибок авторизации
	if strings.Contains(errMsg, "401") ||
		strings.Contains(errMsgLower, "unauthorized") ||
		strings.Contains(errMsgLower, "invalid api key") ||
		strings.Contains(errMsg, "Forbidden") {
		return ErrAuthFailed
	}

	// Проверка лимитов
	if strings.Contains(errMsg, "429") ||
		strings.Contains(errMsgLower, "too many requests") ||
		strings.Contains(errMsgLower, "rate limit") {
		return ErrRateLimit
	}

	// Проверка таймаутов
	if strings.Contains(errMsgLower, "timeout") ||
		strings.Contains(errMsgLower, "deadline exceeded") {
		return ErrTimeout
	}

	// Проверка сетевых проблем
	if strings.Contains(errMsgLower, "connection refused") ||
		strings.Contains(errMsgLower, "no such host") ||
		strings.Contains(errMsgLower, "connection reset") {
		return ErrNetwork
	}

	return ErrUnknown
}
