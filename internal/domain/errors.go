package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized — нет валидной сессии; в бэкенд не ходим.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation — локальная валидация не пройдена; сетевой вызов не выполняется.
	ErrValidation = errors.New("validation failed")
)

// APIError — ошибка апстрима или транспорта, нормализованная к {error} + статус.
type APIError struct {
	Status    int
	Message   string
	Retryable bool
	Err       error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// NewUpstreamError — бэкенд ответил не-2xx.
func NewUpstreamError(status int, message string) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{
		Status:    status,
		Message:   message,
		Retryable: status >= http.StatusInternalServerError || status == http.StatusTooManyRequests,
	}
}

// NewTransportError — запрос не завершился (сеть, таймаут).
func NewTransportError(err error) *APIError {
	return &APIError{
		Status:    http.StatusServiceUnavailable,
		Message:   "backend unavailable",
		Retryable: true,
		Err:       err,
	}
}

// NormalizeError — приводит любую ошибку к *APIError.
func NormalizeError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, ErrUnauthorized):
		return &APIError{Status: http.StatusUnauthorized, Message: "Unauthorized", Err: err}
	case errors.Is(err, ErrValidation):
		return &APIError{Status: http.StatusUnprocessableEntity, Message: err.Error(), Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &APIError{Status: http.StatusGatewayTimeout, Message: "request timed out", Retryable: true, Err: err}
	default:
		return NewTransportError(err)
	}
}
