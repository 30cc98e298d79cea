package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"

	"github.com/google/uuid"
)

type LoginUseCase struct {
	auth     port.AuthPort
	sessions port.SessionStorePort
}

func NewLoginUseCase(auth port.AuthPort, sessions port.SessionStorePort) *LoginUseCase {
	return &LoginUseCase{auth: auth, sessions: sessions}
}

// Execute логинится в backend и сохраняет токены в новую сессию.
func (uc *LoginUseCase) Execute(ctx context.Context, username, password string) (*domain.Session, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "Login",
		"username": username,
	})
	ucLogger.Info("Use case started: attempting to login user", nil)

	tokens, user, err := uc.auth.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			ucLogger.Warn("Login failed: invalid credentials", nil)
			return nil, err
		}
		ucLogger.Error("Backend login failed", err, nil)
		return nil, fmt.Errorf("backend login: %w", err)
	}

	session := &domain.Session{
		ID:           uuid.NewString(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		CurrentUser:  user,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		ucLogger.Error("Failed to save session after successful login", err, nil)
		return nil, fmt.Errorf("save session: %w", err)
	}

	ucLogger.Info("Use case finished: user logged in successfully", port.Fields{"session_id": session.ID})
	return session, nil
}

type LogoutUseCase struct {
	sessions port.SessionStorePort
}

func NewLogoutUseCase(sessions port.SessionStorePort) *LogoutUseCase {
	return &LogoutUseCase{sessions: sessions}
}

// Execute удаляет сессию. Отсутствующая сессия - не ошибка.
func (uc *LogoutUseCase) Execute(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		contextkeys.LoggerFromContext(ctx).Error("Failed to delete session", err, port.Fields{
			"use_case":   "Logout",
			"session_id": sessionID,
		})
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

type CurrentUserUseCase struct {
	sessions port.SessionStorePort
}

func NewCurrentUserUseCase(sessions port.SessionStorePort) *CurrentUserUseCase {
	return &CurrentUserUseCase{sessions: sessions}
}

// Execute возвращает пользователя сессии или domain.ErrLoginRequired.
func (uc *CurrentUserUseCase) Execute(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, domain.ErrLoginRequired
	}
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrLoginRequired
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.CurrentUser == nil {
		return nil, domain.ErrLoginRequired
	}
	return session.CurrentUser, nil
}
