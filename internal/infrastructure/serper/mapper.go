package serper

import (
	"fmt"

	"github.com/chatlens/bot/internal/domain"
)

// Fallbacks for optional fields the search engine may omit. A lookup never
// fails solely because a result is missing metadata.
const (
	FallbackName     = "Unknown Product"
	FallbackValue    = "N/A"
	FallbackLink     = "#"
	FallbackShipping = "N/A"
)

// MapToProductRecord converts a raw shopping item to the domain record shape,
// substituting fallbacks for absent optional fields.
func MapToProductRecord(item domain.ShoppingItem) domain.ProductRecord {
	record := domain.ProductRecord{
		Name:     item.Title,
		Price:    item.Price,
		Vendor:   item.Source,
		Link:     item.Link,
		Image:    item.ImageURL,
		Shipping: item.Delivery,
		Rating:   FallbackValue,
	}

	if record.Name == "" {
		record.Name = FallbackName
	}
	if record.Price == "" {
		record.Price = FallbackValue
	}
	if record.Vendor == "" {
		record.Vendor = FallbackValue
	}
	if record.Link == "" {
		record.Link = FallbackLink
	}
	if record.Shipping == "" {
		record.Shipping = FallbackShipping
	}
	if item.Rating > 0 {
		record.Rating = fmt.Sprintf("%.1f", item.Rating)
	}

	return record
}

// MapToProductRecords converts a slice of raw items, preserving order.
func MapToProductRecords(items []domain.ShoppingItem) []domain.ProductRecord {
	records := make([]domain.ProductRecord, 0, len(items))
	for _, item := range items {
		records = append(records, MapToProductRecord(item))
	}
	return records
}
