package http

import (
	"fmt"

	"github.com/chatlens/bot/internal/domain"
	"github.com/chatlens/bot/internal/infrastructure/serper"
)

// SummaryEmbed renders a conversation summary as a titled panel with a footer
// noting how many source messages fed the summary.
func SummaryEmbed(summary *domain.Summary) domain.Embed {
	return domain.Embed{
		Title:       "Conversation Summary",
		Description: summary.Text,
		Color:       domain.ColorSummary,
		Footer:      fmt.Sprintf("Summarized %d messages", summary.MessageCount),
	}
}

// ProductPages renders one panel per product record. The rating field is
// omitted when the search engine reported none; the paginator stamps the page
// indicator into the footer.
func ProductPages(records []domain.ProductRecord) []domain.Embed {
	pages := make([]domain.Embed, 0, len(records))

	for _, record := range records {
		fields := []domain.EmbedField{
			{Name: "Price", Value: record.Price, Inline: true},
			{Name: "Shipping", Value: record.Shipping, Inline: true},
		}
		if record.Rating != serper.FallbackValue {
			fields = append(fields, domain.EmbedField{Name: "Rating", Value: record.Rating, Inline: true})
		}

		pages = append(pages, domain.Embed{
			Title:       record.Name,
			URL:         record.Link,
			Description: record.Vendor,
			Color:       domain.ColorLookup,
			Fields:      fields,
			Thumbnail:   record.Image,
		})
	}

	return pages
}
