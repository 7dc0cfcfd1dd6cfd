package store

import "context"

// Record keys for the two independently persisted state documents.
const (
	KeyAffectionProfile = "affection-profile"
	KeyChatSessions     = "chat-sessions"
)

// StateStore is the durable key-value store the companion state
// containers serialize into on every mutation. Values are
// self-describing JSON documents; a reader always observes either the
// pre- or post-mutation snapshot.
type StateStore interface {
	Save(ctx context.Context, key string, value []byte) error

	// Load returns the stored document for key. The boolean reports
	// whether a document existed.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	Delete(ctx context.Context, key string) error
}
