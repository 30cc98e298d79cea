package domain

import "time"

// User - текущий пользователь, как его вернул backend при логине.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Session - серверная замена localStorage (access_token, refresh_token, current_user).
type Session struct {
	ID           string
	AccessToken  string
	RefreshToken string
	CurrentUser  *User
	UpdatedAt    time.Time
}

// TokenPair - результат логина или обновления токена.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// WithTokens возвращает копию сессии с новыми токенами.
// Пустой refresh token не затирает старый.
func (s Session) WithTokens(tokens TokenPair, now time.Time) Session {
	s.AccessToken = tokens.AccessToken
	if tokens.RefreshToken != "" {
		s.RefreshToken = tokens.RefreshToken
	}
	s.UpdatedAt = now
	return s
}
