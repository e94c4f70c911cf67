// Package queries contains read-only operations over the shipment store.
// Implements the Query side of the CQRS architecture: list queries read
// summary rows with raw SQL and go through a cache, while the detail query
// loads the full aggregate to compute derived metrics.
package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/google/uuid"
)

// ShipmentSummary is the list-query read model: enough to render a shipment
// row without loading the aggregate. Identifiers come out as strings so the
// summary round-trips through the JSON cache unchanged. IsDelayed is derived
// when the summary is built; a cached summary keeps the flag it was built
// with until the cache entry expires.
type ShipmentSummary struct {
	ID                string     `json:"id"`
	OrderID           string     `json:"order_id"`
	Status            string     `json:"status"`
	CarrierName       string     `json:"carrier_name"`
	TrackingNumber    string     `json:"tracking_number"`
	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	ActualDelivery    *time.Time `json:"actual_delivery,omitempty"`
	IsDelayed         bool       `json:"is_delayed"`
}

// summaryColumns is the select list every summary query shares; the scan in
// scanSummaries matches it positionally.
const summaryColumns = `
	id,
	order_id,
	status,
	carrier_name,
	tracking_number,
	estimated_delivery,
	actual_delivery
`

func scanSummaries(rows *sql.Rows, now time.Time) ([]ShipmentSummary, error) {
	summaries := make([]ShipmentSummary, 0)

	for rows.Next() {
		var id, orderID uuid.UUID
		var status int
		var summary ShipmentSummary

		err := rows.Scan(
			&id,
			&orderID,
			&status,
			&summary.CarrierName,
			&summary.TrackingNumber,
			&summary.EstimatedDelivery,
			&summary.ActualDelivery,
		)
		if err != nil {
			return nil, err
		}

		summary.ID = id.String()
		summary.OrderID = orderID.String()
		summary.Status = shipment.Status(status).String()
		summary.IsDelayed = summary.ActualDelivery == nil && now.After(summary.EstimatedDelivery)

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// summaryCache wraps the cache port with the JSON codec the list handlers
// share. A nil cache disables caching; cache failures are swallowed so the
// database stays the source of truth.
type summaryCache struct {
	cache ports.Cache
	ttl   time.Duration
}

func (c summaryCache) get(ctx context.Context, key string) ([]ShipmentSummary, bool) {
	if c.cache == nil {
		return nil, false
	}

	payload, ok, err := c.cache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}

	var summaries []ShipmentSummary
	if err := json.Unmarshal(payload, &summaries); err != nil {
		return nil, false
	}
	return summaries, true
}

func (c summaryCache) set(ctx context.Context, key string, summaries []ShipmentSummary) {
	if c.cache == nil {
		return
	}

	payload, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, key, payload, c.ttl)
}
