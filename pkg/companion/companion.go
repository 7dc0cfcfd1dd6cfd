// Package companion holds the client core of the saedam app: the
// affection progression engine, the chat session manager, and the turn
// orchestrator that ties them to the remote conversation backend.
package companion

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"saedam-be/pkg/companion/affection"
	"saedam-be/pkg/companion/chat"
	"saedam-be/pkg/companion/store"
	"saedam-be/pkg/conversation"
)

// SendFailureNotice is the system message appended when a turn cannot
// reach the backend.
const SendFailureNotice = "메시지 전송에 실패했습니다. 다시 시도해주세요."

// ErrTurnInFlight rejects a send while a previous one is still
// outstanding. Sends are serialized per companion, not queued.
var ErrTurnInFlight = errors.New("companion: a turn is already in flight")

// Companion owns one user's client-side state: the affection engine,
// the session manager, and the conversation provider. All mutations run
// on the caller's goroutine; the only suspension point is the remote
// call inside SendTurn.
type Companion struct {
	userID   string
	engine   *affection.Engine
	sessions *chat.Manager
	provider conversation.Provider

	mu       sync.Mutex
	inFlight bool
}

// New rehydrates both state containers from the store and wires them to
// the conversation provider.
func New(ctx context.Context, userID string, st store.StateStore, provider conversation.Provider) (*Companion, error) {
	engine, err := affection.NewEngine(ctx, st)
	if err != nil {
		return nil, err
	}
	sessions, err := chat.NewManager(ctx, st)
	if err != nil {
		return nil, err
	}
	return &Companion{
		userID:   userID,
		engine:   engine,
		sessions: sessions,
		provider: provider,
	}, nil
}

func (c *Companion) Engine() *affection.Engine { return c.engine }

func (c *Companion) Sessions() *chat.Manager { return c.sessions }

// Greet records an app-open visit, advancing the daily streak.
func (c *Companion) Greet(ctx context.Context, now time.Time) (affection.Profile, error) {
	return c.engine.RecordVisit(ctx, now)
}

// SendTurn runs one conversation turn: append the user message, call
// the backend, then either append the fairy reply and apply the
// affection delta, or append a system notice and leave the affection
// profile untouched. The user message survives a failed turn; nothing
// else does.
func (c *Companion) SendTurn(ctx context.Context, content string) (*conversation.Reply, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.finish()

	if _, err := c.sessions.AppendMessage(ctx, chat.RoleUser, content, nil); err != nil {
		return nil, err
	}

	started := time.Now()
	reply, err := c.provider.Send(ctx, c.userID, content)
	if err != nil {
		// Persistence of the notice is best-effort; the transport
		// failure is what the caller needs to see.
		c.sessions.AppendMessage(ctx, chat.RoleSystem, SendFailureNotice, nil) //nolint:errcheck
		return nil, fmt.Errorf("send turn: %w", err)
	}

	thinking := int(time.Since(started).Seconds())
	if _, err := c.sessions.AppendMessage(ctx, chat.RoleFairy, reply.Message, &thinking); err != nil {
		return reply, err
	}

	if err := c.sessions.AccrueAffection(ctx, reply.AffectionGained); err != nil {
		return reply, err
	}
	if _, err := c.engine.AddPoints(ctx, reply.AffectionGained); err != nil {
		return reply, err
	}
	if _, err := c.engine.RecordConversation(ctx, false); err != nil {
		return reply, err
	}
	return reply, nil
}

// EndConversation closes the current session, folding in the points
// gained since it started and the external depth classification.
func (c *Companion) EndConversation(ctx context.Context, isDeep bool) (*chat.Session, error) {
	current := c.sessions.Current()
	if current == nil {
		return nil, nil
	}
	return c.sessions.EndSession(ctx, current.AffectionGained, isDeep)
}

func (c *Companion) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrTurnInFlight
	}
	c.inFlight = true
	return nil
}

func (c *Companion) finish() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}
