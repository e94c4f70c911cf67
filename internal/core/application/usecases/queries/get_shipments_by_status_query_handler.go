package queries

import (
	"context"
	"time"

	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

// GetShipmentsByStatusQueryHandler lists shipment summaries by status.
// Results go through the cache: status listings are hit often by dashboards
// and tolerate the cache TTL of staleness.
type GetShipmentsByStatusQueryHandler struct {
	db    *gorm.DB
	cache summaryCache
}

// NewGetShipmentsByStatusQueryHandler creates a handler for status list
// queries. The cache may be nil to disable caching.
func NewGetShipmentsByStatusQueryHandler(
	db *gorm.DB,
	cache ports.Cache,
	cacheTTL time.Duration,
) GetShipmentsByStatusQueryHandler {
	return GetShipmentsByStatusQueryHandler{
		db:    db,
		cache: summaryCache{cache: cache, ttl: cacheTTL},
	}
}

// Handle returns summaries of all shipments in the requested status,
// oldest first. Serves from the cache when possible; cache failures fall
// through to the database silently.
func (h GetShipmentsByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsByStatusQuery,
) ([]ShipmentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := "shipments:status:" + query.Status().String()
	if cached, ok := h.cache.get(ctx, key); ok {
		return cached, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+summaryColumns+`
		FROM shipments
		WHERE status = ?
		ORDER BY created_at, id
	`, int(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	h.cache.set(ctx, key, summaries)
	return summaries, nil
}
