package usecases_port

import (
	"context"
	"exhome-listing-service/internal/core/domain"
)

type LoginUseCasePort interface {
	Execute(ctx context.Context, username, password string) (*domain.Session, error) // Возвращает новую сессию
}

type LogoutUseCasePort interface {
	Execute(ctx context.Context, sessionID string) error
}

type CurrentUserUseCasePort interface {
	Execute(ctx context.Context, sessionID string) (*domain.User, error)
}
