package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/contracts"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
	"exhome-listing-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 64 << 10

type ListingHandlers struct {
	profiles   *domain.ProfileRegistry
	loadUC     usecases_port.LoadListingsUseCasePort
	parseUC    usecases_port.ParseFiltersUseCasePort
	applyUC    usecases_port.ApplyFiltersUseCasePort
	projectsUC usecases_port.ListProjectsUseCasePort
}

func NewListingHandlers(
	profiles *domain.ProfileRegistry,
	loadUC usecases_port.LoadListingsUseCasePort,
	parseUC usecases_port.ParseFiltersUseCasePort,
	applyUC usecases_port.ApplyFiltersUseCasePort,
	projectsUC usecases_port.ListProjectsUseCasePort,
) *ListingHandlers {
	return &ListingHandlers{
		profiles:   profiles,
		loadUC:     loadUC,
		parseUC:    parseUC,
		applyUC:    applyUC,
		projectsUC: projectsUC,
	}
}

// HandleListings - GET /api/v1/listings/{listingType}/*
// Остаток пути - slug фильтров, например "mua-ban-can-ho,gia-tu-2-ty".
func (h *ListingHandlers) HandleListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleListings"})

	profile, ok := h.profile(w, r)
	if !ok {
		return
	}

	pageIndex, err := queryInt(r, "page", 1)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Query parameter 'page' must be a number")
		return
	}
	pageSize, err := queryInt(r, "pageSize", domain.DefaultPageSize)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Query parameter 'pageSize' must be a number")
		return
	}

	view, err := h.parseUC.Execute(r.Context(), profile, "/"+chi.URLParam(r, "*"))
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	result, err := h.loadUC.Execute(r.Context(), profile, view.Filters, domain.NewPageRequest(pageIndex, pageSize))
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toListingResponse(result, view.Filters))
}

// HandleParseFilters - GET /api/v1/filters/{listingType}/parse?path=
func (h *ListingHandlers) HandleParseFilters(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleParseFilters"})

	profile, ok := h.profile(w, r)
	if !ok {
		return
	}

	view, err := h.parseUC.Execute(r.Context(), profile, r.URL.Query().Get("path"))
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, view)
}

// HandleApplyFilters - POST /api/v1/filters/{listingType}/apply
func (h *ListingHandlers) HandleApplyFilters(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleApplyFilters"})

	profile, ok := h.profile(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if len(body) == 0 {
		WriteJSONError(w, http.StatusBadRequest, "Request body is empty")
		return
	}
	if err := contracts.Validate(contracts.ApplyFiltersRequest, contracts.Version1, body); err != nil {
		logger.Debug("Apply filters request rejected by schema", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var reqDTO ApplyFiltersRequestDTO
	if err := json.Unmarshal(body, &reqDTO); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.applyUC.Execute(r.Context(), profile, reqDTO.Filters)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, view)
}

// HandleProfiles - GET /api/v1/profiles
func (h *ListingHandlers) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, h.profiles.All())
}

// HandleProjects - GET /api/v1/projects
func (h *ListingHandlers) HandleProjects(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleProjects"})

	projects, err := h.projectsUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	out := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectDTO{ID: p.ID, Name: p.Name, Slug: p.Slug})
	}
	RespondWithJSON(w, http.StatusOK, out)
}

func (h *ListingHandlers) profile(w http.ResponseWriter, r *http.Request) (domain.ListingProfile, bool) {
	profile, err := h.profiles.Lookup(chi.URLParam(r, "listingType"))
	if err != nil {
		WriteJSONError(w, http.StatusNotFound, err.Error())
		return domain.ListingProfile{}, false
	}
	return profile, true
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// writeUseCaseError переводит ошибки use case в HTTP-статусы.
// Все, что не распознано, считается ошибкой backend (502).
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	switch {
	case errors.Is(err, domain.ErrLoginRequired):
		WriteJSONError(w, http.StatusUnauthorized, "login_required")
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, domain.ErrUnknownListingType):
		WriteJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrRouteMismatch):
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusBadGateway, "backend_unavailable")
	}
}
