package port

import (
	"context"
	"exhome-listing-service/internal/core/domain"
)

// SessionStorePort - хранилище сессий вместо localStorage браузера.
// Get возвращает domain.ErrSessionNotFound, если сессии нет.
type SessionStorePort interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
