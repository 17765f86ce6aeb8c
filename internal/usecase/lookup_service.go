package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chatlens/bot/internal/domain"
	"github.com/chatlens/bot/internal/infrastructure/serper"
)

// MaxResults caps how many product records a lookup returns. With a vendor
// filter active the cap applies to matches in original search ranking, so the
// kept items are the first five matches, not the five highest rated.
const MaxResults = 5

// cacheNamespace prefixes every lookup cache key before hashing.
const cacheNamespace = "lookup"

// LookupServiceConfig holds configuration for the lookup service
type LookupServiceConfig struct {
	CacheTTL time.Duration
}

// LookupService handles product lookups with cache-aside memoization and
// optional vendor scoping.
type LookupService struct {
	cache    domain.CacheRepository
	search   domain.SearchClient
	vendors  domain.VendorRegistry
	cacheTTL time.Duration
}

// NewLookupService creates a new lookup service with dependencies
func NewLookupService(
	cache domain.CacheRepository,
	search domain.SearchClient,
	vendors domain.VendorRegistry,
	config LookupServiceConfig,
) *LookupService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Minute // product prices go stale on a sub-hour cadence
	}

	return &LookupService{
		cache:    cache,
		search:   search,
		vendors:  vendors,
		cacheTTL: cacheTTL,
	}
}

// DeriveLookupKey turns a (query, vendor) pair into a stable cache key.
// The NUL separator keeps the framing unambiguous, so an absent vendor never
// collides with a present one and distinct pairs hash to distinct keys.
func DeriveLookupKey(query, vendor string) string {
	sum := sha256.Sum256([]byte(cacheNamespace + "\x00" + query + "\x00" + vendor))
	return hex.EncodeToString(sum[:])
}

// Search looks up products for a query, optionally scoped to a vendor.
// Flow: check cache -> validate vendor -> query search endpoint -> filter ->
// map -> write-through cache -> return.
func (s *LookupService) Search(ctx context.Context, query, vendor string) (*domain.LookupResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	// An unsupported vendor short-circuits before any network or cache work.
	var vendorDomain string
	if vendor != "" {
		var err error
		vendorDomain, err = s.vendors.Lookup(vendor)
		if err != nil {
			return nil, err
		}
	}

	cacheKey := DeriveLookupKey(query, strings.ToLower(vendor))

	if records, err := s.getFromCache(ctx, cacheKey); err == nil {
		return &domain.LookupResult{Records: records, Source: "cache"}, nil
	}

	items, err := s.search.ShoppingSearch(ctx, buildSearchQuery(query, vendor))
	if err != nil {
		// A failed call is reported as unavailable, never as an empty search.
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}

	if vendorDomain != "" {
		items = filterByVendor(items, vendorDomain)
	} else if len(items) > MaxResults {
		items = items[:MaxResults]
	}

	if len(items) == 0 {
		return nil, domain.ErrNoResults
	}

	records := serper.MapToProductRecords(items)
	s.setInCache(cacheKey, records)

	return &domain.LookupResult{Records: records, Source: "search"}, nil
}

// buildSearchQuery shapes the raw user query for the search engine: a generic
// shopping hint without a vendor, the vendor name as a ranking hint with one.
func buildSearchQuery(query, vendor string) string {
	if vendor == "" {
		return query + " buy online"
	}
	return query + " " + vendor
}

// filterByVendor keeps items attributable to the vendor domain, preserving
// input order and stopping once MaxResults matches are collected. An item
// matches if its declared source or its link contains the domain substring,
// case-insensitively.
func filterByVendor(items []domain.ShoppingItem, vendorDomain string) []domain.ShoppingItem {
	needle := strings.ToLower(vendorDomain)
	matched := make([]domain.ShoppingItem, 0, MaxResults)

	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Source), needle) ||
			strings.Contains(strings.ToLower(item.Link), needle) {
			matched = append(matched, item)
			if len(matched) == MaxResults {
				break
			}
		}
	}

	return matched
}

// getFromCache retrieves and deserializes cached records. Any decode failure
// counts as a miss so a corrupt entry never surfaces to the user.
func (s *LookupService) getFromCache(ctx context.Context, key string) ([]domain.ProductRecord, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var records []domain.ProductRecord
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		log.Printf("[lookup] discarding undecodable cache entry %s: %v", key, err)
		return nil, domain.ErrCacheMiss
	}
	if len(records) == 0 {
		return nil, domain.ErrCacheMiss
	}

	return records, nil
}

// setInCache writes records through to the cache without blocking the
// response. Serialization or store failures are logged and swallowed; the
// cache is an accelerator, not a correctness mechanism.
func (s *LookupService) setInCache(key string, records []domain.ProductRecord) {
	value, err := json.Marshal(records)
	if err != nil {
		log.Printf("[lookup] failed to serialize records for cache: %v", err)
		return
	}

	ttl := s.cacheTTL
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.cache.Set(ctx, key, string(value), ttl); err != nil {
			log.Printf("[lookup] cache write failed: %v", err)
		}
	}()
}
