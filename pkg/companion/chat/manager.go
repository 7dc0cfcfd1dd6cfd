package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"saedam-be/pkg/companion/store"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser   Role = "user"
	RoleFairy  Role = "fairy"
	RoleSystem Role = "system"
)

// Message is one transcript entry. Messages are never mutated after
// append; ordering is append order.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// ThinkingTime is the seconds the fairy spent producing this reply.
	// Present only on fairy messages.
	ThinkingTime *int `json:"thinking_time,omitempty"`

	// IsDeep carries the external depth classification, when one exists.
	IsDeep *bool `json:"is_deep,omitempty"`
}

// Session is one conversation transcript. It is mutable while current
// and becomes immutable once archived.
type Session struct {
	ID                 string     `json:"id"`
	Messages           []Message  `json:"messages"`
	StartedAt          time.Time  `json:"started_at"`
	EndedAt            *time.Time `json:"ended_at,omitempty"`
	AffectionGained    int        `json:"affection_gained"`
	IsDeepConversation bool       `json:"is_deep_conversation"`
}

// state is the persisted document under the chat-sessions key.
type state struct {
	Current  *Session  `json:"current"`
	Sessions []Session `json:"sessions"`
}

// Manager owns the current session and the archive of ended ones. At
// most one session is current at a time; ended sessions are archived
// newest-first. Every mutator writes the full document through to the
// state store.
type Manager struct {
	store    store.StateStore
	current  *Session
	sessions []Session
}

// NewManager rehydrates the session state from the store; a missing or
// empty document yields no current session and an empty archive.
func NewManager(ctx context.Context, st store.StateStore) (*Manager, error) {
	m := &Manager{store: st}

	doc, found, err := st.Load(ctx, store.KeyChatSessions)
	if err != nil {
		return nil, fmt.Errorf("load chat sessions: %w", err)
	}
	if found {
		var loaded state
		if err := json.Unmarshal(doc, &loaded); err != nil {
			return nil, fmt.Errorf("decode chat sessions: %w", err)
		}
		m.current = loaded.Current
		m.sessions = loaded.Sessions
	}
	return m, nil
}

// Current returns a copy of the in-progress session, or nil.
func (m *Manager) Current() *Session {
	if m.current == nil {
		return nil
	}
	return copySession(m.current)
}

// Sessions returns the archive, newest first.
func (m *Manager) Sessions() []Session {
	out := make([]Session, len(m.sessions))
	for i := range m.sessions {
		out[i] = *copySession(&m.sessions[i])
	}
	return out
}

// StartSession begins a new current session. An unfinished current
// session is replaced and discarded, not archived: it was never
// explicitly ended.
func (m *Manager) StartSession(ctx context.Context) (*Session, error) {
	m.current = &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}
	return copySession(m.current), m.save(ctx)
}

// AppendMessage adds a message to the end of the current session,
// starting one first if none is current. thinkingSeconds applies only
// to fairy replies and is dropped for other roles.
func (m *Manager) AppendMessage(ctx context.Context, role Role, content string, thinkingSeconds *int) (Message, error) {
	if m.current == nil {
		m.current = &Session{
			ID:        uuid.NewString(),
			StartedAt: time.Now(),
		}
	}

	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	if role == RoleFairy && thinkingSeconds != nil {
		t := *thinkingSeconds
		msg.ThinkingTime = &t
	}

	// Timestamps are non-decreasing by construction, not by clock trust.
	if n := len(m.current.Messages); n > 0 {
		if last := m.current.Messages[n-1].Timestamp; msg.Timestamp.Before(last) {
			msg.Timestamp = last
		}
	}

	m.current.Messages = append(m.current.Messages, msg)
	return msg, m.save(ctx)
}

// AccrueAffection sums a turn's affection delta into the current
// session. A no-op when no session is current.
func (m *Manager) AccrueAffection(ctx context.Context, delta int) error {
	if m.current == nil || delta == 0 {
		return nil
	}
	m.current.AffectionGained += delta
	return m.save(ctx)
}

// EndSession stamps the current session as ended, folds in the final
// affection gain and depth classification, and moves it to the head of
// the archive. A no-op when no session is current.
func (m *Manager) EndSession(ctx context.Context, affectionGained int, isDeep bool) (*Session, error) {
	if m.current == nil {
		return nil, nil
	}

	now := time.Now()
	ended := *m.current
	ended.EndedAt = &now
	ended.AffectionGained = affectionGained
	ended.IsDeepConversation = isDeep

	m.sessions = append([]Session{ended}, m.sessions...)
	m.current = nil
	return copySession(&ended), m.save(ctx)
}

// ClearHistory empties the archive and discards any current session.
// User-initiated and destructive.
func (m *Manager) ClearHistory(ctx context.Context) error {
	m.current = nil
	m.sessions = nil
	return m.save(ctx)
}

func (m *Manager) save(ctx context.Context) error {
	doc, err := json.Marshal(state{Current: m.current, Sessions: m.sessions})
	if err != nil {
		return fmt.Errorf("encode chat sessions: %w", err)
	}
	if err := m.store.Save(ctx, store.KeyChatSessions, doc); err != nil {
		return fmt.Errorf("persist chat sessions: %w", err)
	}
	return nil
}

func copySession(s *Session) *Session {
	out := *s
	out.Messages = append([]Message(nil), s.Messages...)
	return &out
}
