package authtransport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// Transport подставляет Bearer токен сессии из контекста запроса.
//
// На 401 делает ровно одно обновление токена (общее для всех параллельных
// запросов одной сессии), сохраняет новые токены и один раз повторяет запрос.
// Если обновить не удалось, сессия удаляется и возвращается domain.ErrLoginRequired.
type Transport struct {
	base     http.RoundTripper
	auth     port.AuthPort
	sessions port.SessionStorePort
	skew     time.Duration // 0 - без упреждающего обновления
	group    singleflight.Group
	now      func() time.Time
}

func New(base http.RoundTripper, auth port.AuthPort, sessions port.SessionStorePort, skew time.Duration) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		base:     base,
		auth:     auth,
		sessions: sessions,
		skew:     skew,
		now:      time.Now,
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	sessionID := contextkeys.SessionIDFromContext(ctx)
	if sessionID == "" {
		return t.base.RoundTrip(req)
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "AuthTransport",
		"session_id": sessionID,
	})

	session, err := t.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			// устаревшая cookie: идем анонимно
			logger.Debug("Session not found, sending request anonymously", nil)
			return t.base.RoundTrip(req)
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	accessToken := session.AccessToken
	if t.expiresSoon(accessToken) {
		logger.Debug("Access token is about to expire, refreshing proactively", nil)
		if accessToken, err = t.refresh(ctx, logger, sessionID, accessToken); err != nil {
			return nil, err
		}
	}

	// тело без GetBody нельзя отправить второй раз
	canRetry := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil

	resp, err := t.send(req, accessToken, false)
	if err != nil || resp.StatusCode != http.StatusUnauthorized || !canRetry {
		return resp, err
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	logger.Info("Backend returned 401, refreshing access token", nil)
	accessToken, err = t.refresh(ctx, logger, sessionID, accessToken)
	if err != nil {
		return nil, err
	}
	return t.send(req, accessToken, true)
}

func (t *Transport) send(req *http.Request, accessToken string, retry bool) (*http.Response, error) {
	r := req.Clone(req.Context())
	if retry && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("rewind request body: %w", err)
		}
		r.Body = body
	}
	if accessToken != "" {
		r.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return t.base.RoundTrip(r)
}

// refresh обновляет токены сессии и возвращает новый access token.
// staleToken - токен, который не подошел; если в хранилище уже другой,
// значит другой запрос успел обновить, и второй вызов backend не нужен.
func (t *Transport) refresh(ctx context.Context, logger port.LoggerPort, sessionID, staleToken string) (string, error) {
	// отмена запроса-лидера не должна ронять обновление для остальных
	refreshCtx := context.WithoutCancel(ctx)

	v, err, shared := t.group.Do(sessionID, func() (interface{}, error) {
		current, err := t.sessions.Get(refreshCtx, sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return nil, domain.ErrLoginRequired
			}
			return nil, fmt.Errorf("load session: %w", err)
		}
		if current.AccessToken != "" && current.AccessToken != staleToken {
			return current.AccessToken, nil
		}

		if current.RefreshToken == "" {
			t.dropSession(refreshCtx, logger, sessionID)
			return nil, domain.ErrLoginRequired
		}

		tokens, err := t.auth.Refresh(refreshCtx, current.RefreshToken)
		if err != nil {
			logger.Warn("Token refresh failed, clearing session", port.Fields{"error": err.Error()})
			t.dropSession(refreshCtx, logger, sessionID)
			return nil, fmt.Errorf("%w: %w", domain.ErrLoginRequired, err)
		}

		updated := current.WithTokens(*tokens, t.now().UTC())
		if err := t.sessions.Save(refreshCtx, &updated); err != nil {
			return nil, fmt.Errorf("save refreshed session: %w", err)
		}
		logger.Info("Access token refreshed", nil)
		return updated.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		logger.Debug("Joined in-flight token refresh", nil)
	}
	return v.(string), nil
}

func (t *Transport) dropSession(ctx context.Context, logger port.LoggerPort, sessionID string) {
	if err := t.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		logger.Error("Failed to delete session after refresh failure", err, nil)
	}
}

// expiresSoon смотрит на exp в JWT без проверки подписи: подпись проверяет backend.
// Токен не JWT или без exp - не обновляем заранее.
func (t *Transport) expiresSoon(accessToken string) bool {
	if t.skew <= 0 || accessToken == "" {
		return false
	}
	token, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !t.now().Add(t.skew).Before(exp.Time)
}
