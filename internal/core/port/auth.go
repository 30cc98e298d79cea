package port

import (
	"context"
	"exhome-listing-service/internal/core/domain"
)

// AuthPort - логин и обновление токенов на стороне backend.
type AuthPort interface {
	Login(ctx context.Context, username, password string) (*domain.TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
}
