package conversation

import (
	"context"
	"fmt"
	"time"
)

// Reply is the authoritative turn result from the remote conversation
// backend. AffectionGained is the delta the companion applies locally;
// NewLevel/NewPoints echo the server-side totals.
type Reply struct {
	Message           string `json:"message"`
	AffectionGained   int    `json:"affection_gained"`
	NewLevel          int    `json:"new_level"`
	NewPoints         int    `json:"new_points"`
	CommunityUnlocked bool   `json:"community_unlocked"`
}

// UserSnapshot is the progression state as the server sees it.
type UserSnapshot struct {
	AnonymousID        string    `json:"anonymous_id"`
	Level              int       `json:"level"`
	Points             int       `json:"points"`
	TotalConversations int       `json:"total_conversations"`
	DeepConversations  int       `json:"deep_conversations"`
	ConsecutiveDays    int       `json:"consecutive_days"`
	LastVisitDate      time.Time `json:"last_visit_date"`
	CommunityUnlocked  bool      `json:"community_unlocked"`
}

// MessageRecord is one server-side transcript entry, used to hydrate
// history on a fresh device.
type MessageRecord struct {
	ID              string    `json:"id"`
	Role            string    `json:"role"`
	Content         string    `json:"content"`
	IsDeep          bool      `json:"is_deep"`
	AffectionGained int       `json:"affection_gained"`
	CreatedAt       time.Time `json:"created_at"`
}

// Provider sends a user utterance to the remote reasoning backend and
// returns the reply plus the affection delta. Implementations own
// timeouts and never retry; the companion core treats any error as a
// transport failure.
type Provider interface {
	Send(ctx context.Context, userID, message string) (*Reply, error)
}

// TransportError wraps a failed remote conversation call: network
// error, non-success status, or a malformed response body. Status is
// zero when no HTTP response was received.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("conversation transport failure (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("conversation transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
