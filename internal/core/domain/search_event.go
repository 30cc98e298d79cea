package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchEvent - событие "пользователь выполнил поиск", уходит в RabbitMQ для аналитики.
type SearchEvent struct {
	EventID     uuid.UUID   `json:"event_id"`
	ListingType ListingType `json:"listing_type"`
	Path        string      `json:"path"`
	Filters     Filters     `json:"filters"`
	PageIndex   int         `json:"page_index"`
	PageSize    int         `json:"page_size"`
	Total       int         `json:"total"`
	OccurredAt  time.Time   `json:"occurred_at"`
}
