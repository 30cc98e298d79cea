package session_adapter

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore - хранилище сессий в таблице bff_sessions.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate применяет встроенные миграции по порядку имен файлов. Миграции идемпотентны.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "PostgresSessionStore"})
	for _, name := range files {
		sql, err := migrationsFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		logger.Debug("Migration applied", port.Fields{"migration": name})
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresSessionStore",
		"method":    "Get",
	})

	query := `SELECT id, access_token, refresh_token, user_data, updated_at FROM bff_sessions WHERE id = $1`

	var (
		session  domain.Session
		userData []byte
	)
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.AccessToken,
		&session.RefreshToken,
		&userData,
		&session.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		repoLogger.Error("Failed to get session", err, nil)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if len(userData) > 0 {
		var user domain.User
		if err := json.Unmarshal(userData, &user); err != nil {
			return nil, fmt.Errorf("failed to decode session user: %w", err)
		}
		session.CurrentUser = &user
	}
	return &session, nil
}

func (s *PostgresStore) Save(ctx context.Context, session *domain.Session) error {
	var userData []byte
	if session.CurrentUser != nil {
		var err error
		if userData, err = json.Marshal(session.CurrentUser); err != nil {
			return fmt.Errorf("failed to encode session user: %w", err)
		}
	}

	query := `
		INSERT INTO bff_sessions (id, access_token, refresh_token, user_data, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			user_data = EXCLUDED.user_data,
			updated_at = EXCLUDED.updated_at`

	if _, err := s.pool.Exec(ctx, query, session.ID, session.AccessToken, session.RefreshToken, userData, session.UpdatedAt); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to save session", err, port.Fields{
			"component": "PostgresSessionStore",
			"method":    "Save",
		})
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM bff_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
