package ports

import "context"

// EventConsumer — фоновый источник уведомлений бэкенда (Kafka).
// Run блокируется до отмены контекста или фатальной ошибки.
type EventConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
