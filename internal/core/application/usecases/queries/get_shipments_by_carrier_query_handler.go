package queries

import (
	"context"
	"time"

	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

// GetShipmentsByCarrierQueryHandler lists shipment summaries by carrier name.
type GetShipmentsByCarrierQueryHandler struct {
	db    *gorm.DB
	cache summaryCache
}

// NewGetShipmentsByCarrierQueryHandler creates a handler for carrier list
// queries. The cache may be nil to disable caching.
func NewGetShipmentsByCarrierQueryHandler(
	db *gorm.DB,
	cache ports.Cache,
	cacheTTL time.Duration,
) GetShipmentsByCarrierQueryHandler {
	return GetShipmentsByCarrierQueryHandler{
		db:    db,
		cache: summaryCache{cache: cache, ttl: cacheTTL},
	}
}

// Handle returns summaries of all shipments handled by the carrier,
// oldest first. Serves from the cache when possible.
func (h GetShipmentsByCarrierQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsByCarrierQuery,
) ([]ShipmentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	key := "shipments:carrier:" + query.CarrierName()
	if cached, ok := h.cache.get(ctx, key); ok {
		return cached, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+summaryColumns+`
		FROM shipments
		WHERE carrier_name = ?
		ORDER BY created_at, id
	`, query.CarrierName()).Rows()
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
