package auth_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
)

const (
	loginPath   = "/auth/login"
	refreshPath = "/auth/refresh"
)

// Client ходит в auth backend напрямую, без auth-транспорта:
// обновление токена не должно само вызывать обновление токена.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

func (c *Client) Login(ctx context.Context, username, password string) (*domain.TokenPair, *domain.User, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "AuthApiClient",
		"method":    "Login",
	})

	var resp TokenResponse
	status, err := c.postJSON(ctx, loginPath, LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		if status == http.StatusUnauthorized || status == http.StatusBadRequest || status == http.StatusForbidden {
			clientLogger.Warn("Backend rejected credentials", port.Fields{"status_code": status})
			return nil, nil, domain.ErrInvalidCredentials
		}
		clientLogger.Error("Login request failed", err, port.Fields{"status_code": status})
		return nil, nil, err
	}
	if resp.AccessToken == "" {
		return nil, nil, fmt.Errorf("auth backend returned empty access token")
	}

	var user *domain.User
	if resp.User != nil {
		user = &domain.User{
			ID:       string(resp.User.ID),
			Username: resp.User.Username,
			FullName: resp.User.FullName,
			Role:     resp.User.Role,
		}
	} else {
		user = &domain.User{Username: username}
	}

	return &domain.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, user, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "AuthApiClient",
		"method":    "Refresh",
	})

	var resp TokenResponse
	status, err := c.postJSON(ctx, refreshPath, RefreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		clientLogger.Warn("Token refresh failed", port.Fields{"status_code": status, "error": err.Error()})
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("auth backend returned empty access token")
	}

	clientLogger.Debug("Token refreshed", nil)
	return &domain.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

// postJSON возвращает статус ответа (0, если запрос не дошел) и ошибку для не-2xx.
func (c *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to perform request to auth backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("auth backend returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode auth response: %w", err)
	}
	return resp.StatusCode, nil
}
