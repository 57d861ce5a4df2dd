package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"checkout-gateway/internal/core/cache"
	"checkout-gateway/internal/core/commerce"
	"checkout-gateway/internal/core/logger"
	"checkout-gateway/internal/features/checkout/domain"

	"go.uber.org/zap"
)

const locationCacheKey = "location_data"

// CommerceLocationAdapter implements ports.LocationProvider against the
// remote commerce API, with a short-TTL redis cache in front. The data is
// reference material ("fetched once per page load"), so staleness within the
// TTL is acceptable.
type CommerceLocationAdapter struct {
	client        *commerce.Client
	cache         cache.Cache
	ttl           time.Duration
	fallbackRates domain.RateTable
}

// NewCommerceLocationAdapter creates a new CommerceLocationAdapter.
// fallbackRates fill in when the remote payload carries no rate table.
func NewCommerceLocationAdapter(client *commerce.Client, c cache.Cache, ttl time.Duration, fallbackRates domain.RateTable) *CommerceLocationAdapter {
	return &CommerceLocationAdapter{
		client:        client,
		cache:         c,
		ttl:           ttl,
		fallbackRates: fallbackRates,
	}
}

// Locations returns the zone reference data, serving from cache when fresh.
// Cache failures degrade to a direct fetch, never to an error.
func (a *CommerceLocationAdapter) Locations(ctx context.Context) (*domain.LocationData, error) {
	if cached, err := a.cache.Get(ctx, locationCacheKey); err == nil {
		var loc domain.LocationData
		if err := json.Unmarshal(cached, &loc); err == nil {
			return &loc, nil
		}
		logger.Get().Warn("Discarding undecodable cached location data")
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Get().Warn("Location cache read failed", zap.Error(err))
	}

	var loc domain.LocationData
	if err := a.client.Get(ctx, "/api/v1/locations", &loc); err != nil {
		return nil, fmt.Errorf("failed to fetch location data: %w", err)
	}
	if loc.Rates.IsZero() {
		loc.Rates = a.fallbackRates
	}

	if data, err := json.Marshal(loc); err == nil {
		if err := a.cache.Set(ctx, locationCacheKey, data, a.ttl); err != nil {
			logger.Get().Warn("Location cache write failed", zap.Error(err))
		}
	}

	return &loc, nil
}
