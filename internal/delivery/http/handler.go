package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chatlens/bot/internal/domain"
	"github.com/chatlens/bot/internal/usecase"
)

// genericErrorReply is the single reply every command falls back to when a
// handler fails unexpectedly. The contract is one reply per invocation,
// never silence.
const genericErrorReply = "Sorry, I encountered an error."

// summaryFallbackReply is sent when the completion endpoint fails.
const summaryFallbackReply = "Sorry, I encountered an error while trying to summarize the conversation."

// Interaction is the webhook payload the chat platform POSTs for slash-command
// and component interactions.
type Interaction struct {
	Type      string            `json:"type" binding:"required,oneof=command component"`
	User      InteractionUser   `json:"user"`
	ChannelID string            `json:"channel_id"`
	Command   *CommandPayload   `json:"command,omitempty"`
	Component *ComponentPayload `json:"component,omitempty"`
}

// InteractionUser identifies the acting user.
type InteractionUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CommandPayload carries a slash-command invocation.
type CommandPayload struct {
	Name    string         `json:"name"`
	Options CommandOptions `json:"options"`
}

// CommandOptions holds the union of option fields across commands; absent
// options decode as zero values.
type CommandOptions struct {
	Hours  int    `json:"hours"`
	Days   int    `json:"days"`
	Months int    `json:"months"`
	Years  int    `json:"years"`
	Query  string `json:"query"`
	Vendor string `json:"vendor"`
}

// ComponentPayload carries a component (button) interaction.
type ComponentPayload struct {
	CustomID string `json:"custom_id"`
}

// Reply is what the platform relays back to the channel. Update marks a reply
// that replaces the interacting message's content instead of posting a new one.
type Reply struct {
	Content    string         `json:"content,omitempty"`
	Embeds     []domain.Embed `json:"embeds,omitempty"`
	Components []Component    `json:"components,omitempty"`
	Ephemeral  bool           `json:"ephemeral,omitempty"`
	Update     bool           `json:"update,omitempty"`
}

// Component is a navigation button attached to a reply.
type Component struct {
	CustomID string `json:"custom_id"`
	Label    string `json:"label"`
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	summaries *usecase.SummaryService
	lookups   *usecase.LookupService
	sessions  *usecase.SessionRegistry
}

// NewHandler creates a new HTTP handler
func NewHandler(
	summaries *usecase.SummaryService,
	lookups *usecase.LookupService,
	sessions *usecase.SessionRegistry,
) *Handler {
	return &Handler{
		summaries: summaries,
		lookups:   lookups,
		sessions:  sessions,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "chatlens-bot",
		"version": "1.0.0",
	})
}

// Interactions dispatches an incoming interaction to the matching handler.
// Whatever happens inside, the caller gets exactly one reply.
func (h *Handler) Interactions(c *gin.Context) {
	var interaction Interaction
	if err := c.ShouldBindJSON(&interaction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed interaction payload"})
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[http] interaction handler panic: %v", r)
			c.JSON(http.StatusOK, Reply{Content: genericErrorReply})
		}
	}()

	switch interaction.Type {
	case "component":
		c.JSON(http.StatusOK, h.handleNavigation(interaction))
	default:
		c.JSON(http.StatusOK, h.handleCommand(c.Request.Context(), interaction))
	}
}

// handleCommand runs a slash command and builds its reply.
func (h *Handler) handleCommand(ctx context.Context, interaction Interaction) Reply {
	if interaction.Command == nil {
		return Reply{Content: genericErrorReply, Ephemeral: true}
	}

	switch interaction.Command.Name {
	case "summarize":
		return h.handleSummarize(ctx, interaction)
	case "lookup":
		return h.handleLookup(ctx, interaction)
	default:
		return Reply{Content: fmt.Sprintf("Unknown command %q.", interaction.Command.Name), Ephemeral: true}
	}
}

// handleSummarize fetches the window's messages and replies with the summary panel.
func (h *Handler) handleSummarize(ctx context.Context, interaction Interaction) Reply {
	opts := interaction.Command.Options

	window, err := domain.NewWindow(opts.Hours, opts.Days, opts.Months, opts.Years)
	if err != nil {
		return Reply{Content: "Time values must not be negative.", Ephemeral: true}
	}

	summary, err := h.summaries.Summarize(ctx, interaction.ChannelID, window)
	switch {
	case err == nil:
		return Reply{Embeds: []domain.Embed{SummaryEmbed(summary)}}
	case errors.Is(err, domain.ErrNoMessages):
		return Reply{Content: "No messages to summarize!"}
	case errors.Is(err, domain.ErrSummaryUnavailable):
		return Reply{Content: summaryFallbackReply}
	default:
		log.Printf("[http] summarize failed: %v", err)
		return Reply{Content: genericErrorReply}
	}
}

// handleLookup runs a product search and replies with paginated product panels.
func (h *Handler) handleLookup(ctx context.Context, interaction Interaction) Reply {
	opts := interaction.Command.Options

	if strings.TrimSpace(opts.Query) == "" {
		return Reply{Content: "Please provide something to look up.", Ephemeral: true}
	}

	result, err := h.lookups.Search(ctx, opts.Query, opts.Vendor)
	if err != nil {
		var unsupported *domain.UnsupportedVendorError
		switch {
		case errors.As(err, &unsupported):
			return Reply{
				Content: fmt.Sprintf("I don't know the vendor %q. Supported vendors: %s.",
					unsupported.Vendor, strings.Join(unsupported.Supported, ", ")),
				Ephemeral: true,
			}
		case errors.Is(err, domain.ErrNoResults):
			return Reply{Content: fmt.Sprintf("No products found for %q.", opts.Query)}
		case errors.Is(err, domain.ErrSearchUnavailable):
			return Reply{Content: "Product search is unavailable right now, please try again later."}
		default:
			log.Printf("[http] lookup failed: %v", err)
			return Reply{Content: genericErrorReply}
		}
	}

	pages := ProductPages(result.Records)
	paginator, err := usecase.NewPaginator(pages)
	if err != nil {
		log.Printf("[http] lookup produced no pages: %v", err)
		return Reply{Content: genericErrorReply}
	}

	reply := Reply{Embeds: []domain.Embed{paginator.Page()}}
	if paginator.Len() > 1 {
		token := h.sessions.Create(interaction.User.ID, paginator)
		reply.Components = navigationComponents(token)
	}
	return reply
}

// handleNavigation applies a Previous/Next button press to its session.
func (h *Handler) handleNavigation(interaction Interaction) Reply {
	if interaction.Component == nil {
		return Reply{Content: genericErrorReply, Ephemeral: true}
	}

	nav, token, ok := parseNavigationID(interaction.Component.CustomID)
	if !ok {
		return Reply{Content: genericErrorReply, Ephemeral: true}
	}

	page, err := h.sessions.Navigate(token, interaction.User.ID, nav)
	switch {
	case err == nil:
		return Reply{
			Embeds:     []domain.Embed{page},
			Components: navigationComponents(token),
			Update:     true,
		}
	case errors.Is(err, domain.ErrSessionExpired):
		return Reply{Content: "This result view has expired. Run the lookup again.", Ephemeral: true}
	case errors.Is(err, domain.ErrNotSessionOwner):
		return Reply{Content: "Only the user who ran the lookup can turn its pages.", Ephemeral: true}
	default:
		log.Printf("[http] navigation failed: %v", err)
		return Reply{Content: genericErrorReply, Ephemeral: true}
	}
}

// navigationComponents builds the Previous/Next buttons for a session token.
func navigationComponents(token string) []Component {
	return []Component{
		{CustomID: "page:prev:" + token, Label: "Previous"},
		{CustomID: "page:next:" + token, Label: "Next"},
	}
}

// parseNavigationID splits a "page:<dir>:<token>" custom ID.
func parseNavigationID(customID string) (usecase.Navigation, string, bool) {
	parts := strings.SplitN(customID, ":", 3)
	if len(parts) != 3 || parts[0] != "page" || parts[2] == "" {
		return 0, "", false
	}

	switch parts[1] {
	case "prev":
		return usecase.NavigatePrevious, parts[2], true
	case "next":
		return usecase.NavigateNext, parts[2], true
	default:
		return 0, "", false
	}
}
