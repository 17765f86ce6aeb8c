package domain

// Embed colors for reply panels.
const (
	ColorSummary = 0x3498DB // blue, matching the summary panel's original look
	ColorLookup  = 0x2ECC71
	ColorError   = 0xE74C3C
)

// EmbedField is a labeled value inside an embed panel.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed is a titled display panel rendered by the chat platform.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	URL         string       `json:"url,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Thumbnail   string       `json:"thumbnail,omitempty"`
	Footer      string       `json:"footer,omitempty"`
}
