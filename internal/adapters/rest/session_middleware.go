package rest

import (
	"net/http"
	"time"

	"exhome-listing-service/internal/contextkeys"
)

// CookieConfig - параметры cookie сессии
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func (c CookieConfig) withDefaults() CookieConfig {
	if c.Name == "" {
		c.Name = "exhome_session"
	}
	if c.TTL <= 0 {
		c.TTL = 7 * 24 * time.Hour
	}
	return c
}

// SessionMiddleware переносит id сессии из cookie в контекст запроса.
// Проверки нет: неизвестный id auth-транспорт обработает как анонимный запрос.
func SessionMiddleware(cfg CookieConfig) func(next http.Handler) http.Handler {
	cfg = cfg.withDefaults()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.Name)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := contextkeys.ContextWithSessionID(r.Context(), cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (c CookieConfig) sessionCookie(sessionID string) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c CookieConfig) clearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
