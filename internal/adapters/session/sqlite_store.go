package session_adapter

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"exhome-listing-service/internal/core/domain"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS bff_sessions (
    id            TEXT PRIMARY KEY,
    access_token  TEXT    NOT NULL,
    refresh_token TEXT    NOT NULL DEFAULT '',
    user_data     TEXT,
    updated_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS bff_sessions_updated_at_idx ON bff_sessions (updated_at);
`

// SQLiteStore - хранилище сессий в файле SQLite для запуска на одной машине без PostgreSQL.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore открывает базу и создает таблицу. ":memory:" - база в памяти (для тестов).
func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// одна запись за раз; для ":memory:" еще и одна общая база
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	var (
		session   domain.Session
		userData  sql.NullString
		updatedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, access_token, refresh_token, user_data, updated_at FROM bff_sessions WHERE id = ?`, id,
	).Scan(&session.ID, &session.AccessToken, &session.RefreshToken, &userData, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	if userData.Valid && userData.String != "" {
		var user domain.User
		if err := json.Unmarshal([]byte(userData.String), &user); err != nil {
			return nil, fmt.Errorf("failed to decode session user: %w", err)
		}
		session.CurrentUser = &user
	}
	return &session, nil
}

func (s *SQLiteStore) Save(ctx context.Context, session *domain.Session) error {
	var userData sql.NullString
	if session.CurrentUser != nil {
		raw, err := json.Marshal(session.CurrentUser)
		if err != nil {
			return fmt.Errorf("failed to encode session user: %w", err)
		}
		userData = sql.NullString{String: string(raw), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bff_sessions (id, access_token, refresh_token, user_data, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			user_data = excluded.user_data,
			updated_at = excluded.updated_at`,
		session.ID, session.AccessToken, session.RefreshToken, userData, session.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bff_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
