package rest

import (
	"encoding/json"
	"net/http"
	"strings"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/port"
	"exhome-listing-service/internal/core/port/usecases_port"
)

type AuthHandlers struct {
	loginUC  usecases_port.LoginUseCasePort
	logoutUC usecases_port.LogoutUseCasePort
	meUC     usecases_port.CurrentUserUseCasePort
	cookie   CookieConfig
}

func NewAuthHandlers(
	loginUC usecases_port.LoginUseCasePort,
	logoutUC usecases_port.LogoutUseCasePort,
	meUC usecases_port.CurrentUserUseCasePort,
	cookie CookieConfig,
) *AuthHandlers {
	return &AuthHandlers{
		loginUC:  loginUC,
		logoutUC: logoutUC,
		meUC:     meUC,
		cookie:   cookie.withDefaults(),
	}
}

// HandleLogin - POST /api/v1/auth/login
func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleLogin"})

	var reqDTO LoginRequestDTO
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	reqDTO.Username = strings.TrimSpace(reqDTO.Username)
	if reqDTO.Username == "" || reqDTO.Password == "" {
		WriteJSONError(w, http.StatusBadRequest, "Fields 'username' and 'password' are required")
		return
	}

	session, err := h.loginUC.Execute(r.Context(), reqDTO.Username, reqDTO.Password)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	http.SetCookie(w, h.cookie.sessionCookie(session.ID))
	logger.Info("User logged in", port.Fields{"username": reqDTO.Username})
	RespondWithJSON(w, http.StatusOK, SessionResponseDTO{User: session.CurrentUser})
}

// HandleLogout - POST /api/v1/auth/logout
func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleLogout"})

	if err := h.logoutUC.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context())); err != nil {
		logger.Error("Failed to delete session", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	http.SetCookie(w, h.cookie.clearedCookie())
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe - GET /api/v1/auth/me
func (h *AuthHandlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleMe"})

	user, err := h.meUC.Execute(r.Context(), contextkeys.SessionIDFromContext(r.Context()))
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, SessionResponseDTO{User: user})
}
