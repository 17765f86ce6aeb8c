package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatlens/bot/internal/domain"
)

// fakeCache is an in-memory CacheRepository that signals writes so tests can
// wait out the service's asynchronous write-through.
type fakeCache struct {
	mutex  sync.Mutex
	data   map[string]string
	writes chan string
	err    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data:   make(map[string]string),
		writes: make(chan string, 8),
	}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	value, ok := c.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.mutex.Lock()
	c.data[key] = value
	c.mutex.Unlock()
	c.writes <- key
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error { return nil }

func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func (c *fakeCache) waitForWrite(t *testing.T) {
	t.Helper()
	select {
	case <-c.writes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cache write-through")
	}
}

// fakeSearch records queries and replays canned items or an error.
type fakeSearch struct {
	mutex   sync.Mutex
	queries []string
	items   []domain.ShoppingItem
	err     error
}

func (s *fakeSearch) ShoppingSearch(ctx context.Context, query string) ([]domain.ShoppingItem, error) {
	s.mutex.Lock()
	s.queries = append(s.queries, query)
	s.mutex.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func (s *fakeSearch) callCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.queries)
}

var testVendors = domain.VendorRegistry{
	"amazon": "amazon.",
	"ebay":   "ebay.",
}

func newTestLookupService(cache *fakeCache, search *fakeSearch) *LookupService {
	return NewLookupService(cache, search, testVendors, LookupServiceConfig{CacheTTL: time.Minute})
}

func TestDeriveLookupKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, DeriveLookupKey("widget", "amazon"), DeriveLookupKey("widget", "amazon"))
	})

	t.Run("distinct pairs produce distinct keys", func(t *testing.T) {
		keys := map[string]string{}
		pairs := [][2]string{
			{"widget", ""},
			{"widget", "amazon"},
			{"widget", "ebay"},
			{"gadget", "amazon"},
			{"widget amazon", ""}, // must not collide with ("widget","amazon")
		}
		for _, pair := range pairs {
			key := DeriveLookupKey(pair[0], pair[1])
			if prev, seen := keys[key]; seen {
				t.Fatalf("key collision between %q and %v", prev, pair)
			}
			keys[key] = fmt.Sprintf("%v", pair)
		}
	})

	t.Run("fixed-length hex output", func(t *testing.T) {
		key := DeriveLookupKey("query with spaces & punctuation!", "amazon")
		assert.Len(t, key, 64)
		assert.Regexp(t, "^[0-9a-f]+$", key)
	})
}

func TestLookupService_GenericSearch(t *testing.T) {
	cache := newFakeCache()
	search := &fakeSearch{
		items: []domain.ShoppingItem{
			{Title: "A", Price: "$1"},
			{Title: "B", Price: "$2"},
			{Title: "C", Price: "$3"},
			{Title: "D", Price: "$4"},
			{Title: "E", Price: "$5"},
			{Title: "F", Price: "$6"},
			{Title: "G", Price: "$7"},
		},
	}
	service := newTestLookupService(cache, search)

	result, err := service.Search(context.Background(), "widget", "")

	require.NoError(t, err)
	assert.Equal(t, "search", result.Source)
	assert.Len(t, result.Records, MaxResults)
	assert.Equal(t, "A", result.Records[0].Name)
	assert.Equal(t, []string{"widget buy online"}, search.queries)
}

func TestLookupService_VendorSearch(t *testing.T) {
	cache := newFakeCache()
	// 8 items where positions 1,3,5,6,7 are attributable to the vendor:
	// some by source, some only by link.
	search := &fakeSearch{
		items: []domain.ShoppingItem{
			{Title: "P0", Source: "walmart.com", Link: "https://walmart.com/0"},
			{Title: "P1", Source: "Amazon.com", Link: "https://example.com/1"},
			{Title: "P2", Source: "ebay.com", Link: "https://ebay.com/2"},
			{Title: "P3", Source: "other", Link: "https://AMAZON.co.uk/3"},
			{Title: "P4", Source: "target.com", Link: "https://target.com/4"},
			{Title: "P5", Source: "amazon.de", Link: "https://amazon.de/5"},
			{Title: "P6", Source: "Amazon Marketplace", Link: "https://amazon.com/6"},
			{Title: "P7", Source: "other", Link: "https://amazon.com/7"},
		},
	}
	service := newTestLookupService(cache, search)

	result, err := service.Search(context.Background(), "widget", "Amazon")

	require.NoError(t, err)
	require.Len(t, result.Records, 5)
	// First five matches in original order
	assert.Equal(t, "P1", result.Records[0].Name)
	assert.Equal(t, "P3", result.Records[1].Name)
	assert.Equal(t, "P5", result.Records[2].Name)
	assert.Equal(t, "P6", result.Records[3].Name)
	assert.Equal(t, "P7", result.Records[4].Name)
	assert.Equal(t, []string{"widget Amazon"}, search.queries)
}

func TestLookupService_UnsupportedVendor(t *testing.T) {
	cache := newFakeCache()
	search := &fakeSearch{}
	service := newTestLookupService(cache, search)

	_, err := service.Search(context.Background(), "widget", "acme")

	var unsupported *domain.UnsupportedVendorError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "acme", unsupported.Vendor)
	assert.Equal(t, []string{"amazon", "ebay"}, unsupported.Supported)
	// Rejection happens before any network call
	assert.Equal(t, 0, search.callCount())
}

func TestLookupService_EmptyQuery(t *testing.T) {
	service := newTestLookupService(newFakeCache(), &fakeSearch{})

	_, err := service.Search(context.Background(), "   ", "")

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestLookupService_NoResults(t *testing.T) {
	service := newTestLookupService(newFakeCache(), &fakeSearch{})

	_, err := service.Search(context.Background(), "widget", "")

	assert.ErrorIs(t, err, domain.ErrNoResults)
}

func TestLookupService_SearchFailureIsNotEmpty(t *testing.T) {
	search := &fakeSearch{err: errors.New("connection refused")}
	service := newTestLookupService(newFakeCache(), search)

	_, err := service.Search(context.Background(), "widget", "")

	// A failed call is unavailable, never conflated with a zero-result search
	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
	assert.NotErrorIs(t, err, domain.ErrNoResults)
}

func TestLookupService_CacheHitSkipsSearch(t *testing.T) {
	cache := newFakeCache()
	search := &fakeSearch{items: []domain.ShoppingItem{{Title: "Widget", Price: "$5"}}}
	service := newTestLookupService(cache, search)

	first, err := service.Search(context.Background(), "widget", "")
	require.NoError(t, err)
	assert.Equal(t, "search", first.Source)
	cache.waitForWrite(t)

	second, err := service.Search(context.Background(), "widget", "")
	require.NoError(t, err)
	assert.Equal(t, "cache", second.Source)
	assert.Equal(t, first.Records, second.Records)

	// Only the first invocation hit the live endpoint
	assert.Equal(t, 1, search.callCount())
}

func TestLookupService_UndecodableCacheEntryIsMiss(t *testing.T) {
	cache := newFakeCache()
	cache.data[DeriveLookupKey("widget", "")] = "{not valid json"
	search := &fakeSearch{items: []domain.ShoppingItem{{Title: "Widget"}}}
	service := newTestLookupService(cache, search)

	result, err := service.Search(context.Background(), "widget", "")

	require.NoError(t, err)
	assert.Equal(t, "search", result.Source)
	assert.Equal(t, 1, search.callCount())
}

func TestLookupService_CacheUnavailableDegradesToLiveSearch(t *testing.T) {
	cache := newFakeCache()
	cache.err = errors.New("cache backend unreachable")
	search := &fakeSearch{items: []domain.ShoppingItem{{Title: "Widget"}}}
	service := newTestLookupService(cache, search)

	result, err := service.Search(context.Background(), "widget", "")

	require.NoError(t, err)
	assert.Equal(t, "search", result.Source)
}

func TestFilterByVendor_EarlyTermination(t *testing.T) {
	items := make([]domain.ShoppingItem, 0, 10)
	for i := 0; i < 10; i++ {
		items = append(items, domain.ShoppingItem{
			Title: fmt.Sprintf("P%d", i),
			Link:  fmt.Sprintf("https://amazon.com/%d", i),
		})
	}

	matched := filterByVendor(items, "amazon.")

	require.Len(t, matched, MaxResults)
	for i, item := range matched {
		assert.Equal(t, fmt.Sprintf("P%d", i), item.Title)
	}
}

func TestFilterByVendor_NoMatches(t *testing.T) {
	items := []domain.ShoppingItem{
		{Title: "P0", Source: "walmart.com", Link: "https://walmart.com/0"},
	}

	assert.Empty(t, filterByVendor(items, "amazon."))
}
