package interfaces

import (
	"context"
)

// EventPublisher определяет контракт для отправки событий сессий
// во внешние системы.
type EventPublisher interface {
	Produce(ctx context.Context, key, value []byte) error
	Close() error
}
