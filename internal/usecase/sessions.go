package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/chatlens/bot/internal/domain"
)

// SessionIdleTimeout is how long a pagination session accepts navigation
// after its last interaction.
const SessionIdleTimeout = 60 * time.Second

// maxSessions bounds the registry so abandoned sessions cannot accumulate
// faster than the TTL reaps them.
const maxSessions = 1024

// Navigation identifies a user navigation event on a paginated message.
type Navigation int

const (
	NavigatePrevious Navigation = iota
	NavigateNext
)

// session ties a paginator to the user who created it. Each displayed message
// carries its own session token, so navigation mutates only the state behind
// the message the event arrived on, under that session's lock.
type session struct {
	ownerID   string
	paginator *Paginator
	mutex     sync.Mutex
}

// SessionRegistry tracks live pagination sessions keyed by session token. The
// token is embedded in the displayed message's navigation components. Entries
// expire after SessionIdleTimeout without being touched; a late event finds
// nothing and resolves to ErrSessionExpired rather than a stale mutation.
type SessionRegistry struct {
	sessions *expirable.LRU[string, *session]
}

// NewSessionRegistry creates an empty registry with TTL-based expiry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: expirable.NewLRU[string, *session](maxSessions, nil, SessionIdleTimeout),
	}
}

// Create registers a pagination session owned by ownerID and returns the
// session token for the message's navigation component custom IDs.
func (r *SessionRegistry) Create(ownerID string, paginator *Paginator) string {
	token := uuid.NewString()
	r.sessions.Add(token, &session{
		ownerID:   ownerID,
		paginator: paginator,
	})
	return token
}

// Navigate applies a navigation event from userID to the session behind token
// and returns the re-rendered current page. Expired or unknown sessions yield
// ErrSessionExpired; events from anyone but the session owner yield
// ErrNotSessionOwner and leave the state untouched.
func (r *SessionRegistry) Navigate(token, userID string, nav Navigation) (domain.Embed, error) {
	s, ok := r.sessions.Get(token)
	if !ok {
		return domain.Embed{}, domain.ErrSessionExpired
	}

	if s.ownerID != userID {
		return domain.Embed{}, domain.ErrNotSessionOwner
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var page domain.Embed
	switch nav {
	case NavigatePrevious:
		page = s.paginator.Previous()
	default:
		page = s.paginator.Next()
	}

	// Re-adding refreshes the entry's TTL, implementing the idle timeout.
	r.sessions.Add(token, s)

	return page, nil
}
