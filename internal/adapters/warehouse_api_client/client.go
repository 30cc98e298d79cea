package warehouse_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"exhome-listing-service/internal/contextkeys"
	"exhome-listing-service/internal/core/domain"
	"exhome-listing-service/internal/core/port"
)

const (
	apartmentsPath = "/warehouse/api/warehouse/apartments/list"
	projectsPath   = "/warehouse/api/warehouse/projects/list"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient - httpClient обычно несет auth-транспорт, который подставляет Bearer токен сессии.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

func (c *Client) ListApartments(ctx context.Context, query domain.ApartmentQuery) (*domain.ApartmentPage, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "WarehouseApiClient",
		"method":    "ListApartments",
	})

	reqURL := c.baseURL + apartmentsPath + "?" + apartmentsQuery(query).Encode()
	clientLogger.Debug("Sending request to warehouse", port.Fields{"url": reqURL})

	resp, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to warehouse", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := statusError(resp)
		clientLogger.Error("Received error response from warehouse", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var list ApartmentListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		clientLogger.Error("Failed to decode response from warehouse", err, nil)
		return nil, fmt.Errorf("decode apartments response: %w", err)
	}

	clientLogger.Debug("Successfully received and decoded response", port.Fields{
		"items_count": len(list.Data),
		"total":       list.Total,
	})

	page := &domain.ApartmentPage{
		Items:  make([]domain.Apartment, len(list.Data)),
		Total:  list.Total,
		Limit:  query.Limit,
		Offset: query.Offset,
	}
	for i, dto := range list.Data {
		page.Items[i] = toDomainApartment(dto, query.ListingType)
	}
	return page, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "WarehouseApiClient",
		"method":    "ListProjects",
	})

	reqURL := c.baseURL + projectsPath
	resp, err := c.doRequest(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		clientLogger.Error("Failed to perform request to warehouse", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := statusError(resp)
		clientLogger.Error("Received error response from warehouse", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var list ProjectListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		clientLogger.Error("Failed to decode response from warehouse", err, nil)
		return nil, fmt.Errorf("decode projects response: %w", err)
	}

	result := make([]domain.Project, len(list.Data))
	for i, dto := range list.Data {
		result[i] = domain.Project{ID: dto.ID, Name: dto.Name, Slug: dto.Slug}
	}
	return result, nil
}

// statusError - ошибка по не-2xx ответу. 401 здесь значит, что транспорт
// не смог (или не пытался) обновить токен: нужен вход.
func statusError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: warehouse returned status code %d: %s", domain.ErrLoginRequired, resp.StatusCode, string(bodyBytes))
	}
	return fmt.Errorf("warehouse returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
}

func apartmentsQuery(q domain.ApartmentQuery) url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))
	if q.PropertyGroupID > 0 {
		v.Set("property_group_id", strconv.Itoa(q.PropertyGroupID))
	}
	if q.ListingType != "" {
		v.Set("demand", string(q.ListingType))
	}

	f := q.Filters
	if f.ProjectSlug != "" {
		v.Set("project_slug", f.ProjectSlug)
	} else if f.ProjectID != nil {
		v.Set("project_id", strconv.Itoa(*f.ProjectID))
	}
	if f.PriceFrom != nil {
		v.Set("price_from", strconv.FormatInt(*f.PriceFrom, 10))
	}
	if f.PriceTo != nil {
		v.Set("price_to", strconv.FormatInt(*f.PriceTo, 10))
	}
	if f.AreaFrom != nil {
		v.Set("area_from", strconv.Itoa(*f.AreaFrom))
	}
	if f.AreaTo != nil {
		v.Set("area_to", strconv.Itoa(*f.AreaTo))
	}
	return v
}

func toDomainApartment(dto ApartmentResponse, fallbackType domain.ListingType) domain.Apartment {
	listingType := domain.ListingType(dto.Demand)
	if listingType == "" {
		listingType = fallbackType
	}

	var updatedAt time.Time
	if dto.UpdatedAt != "" {
		if t, err := time.Parse(time.RFC3339, dto.UpdatedAt); err == nil {
			updatedAt = t
		}
	}

	return domain.Apartment{
		ID:          dto.ID,
		Code:        dto.Code,
		Title:       dto.Title,
		ProjectID:   dto.ProjectID,
		ProjectName: dto.ProjectName,
		Price:       int64(math.Round(dto.Price)),
		Area:        dto.Area,
		Bedrooms:    dto.Bedrooms,
		Bathrooms:   dto.Bathrooms,
		Floor:       dto.Floor,
		Direction:   dto.Direction,
		Status:      dto.Status,
		ListingType: listingType,
		Images:      dto.Images,
		UpdatedAt:   updatedAt,
	}
}
