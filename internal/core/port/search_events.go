package port

import (
	"context"
	"exhome-listing-service/internal/core/domain"
)

// SearchEventsPort публикует события поиска для аналитики.
type SearchEventsPort interface {
	PublishSearchPerformed(ctx context.Context, event domain.SearchEvent) error
}
