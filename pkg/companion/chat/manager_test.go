package chat

import (
	"context"
	"testing"

	"saedam-be/pkg/companion/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, store.StateStore) {
	t.Helper()
	st := store.NewCacheStore()
	m, err := NewManager(context.Background(), st)
	require.NoError(t, err)
	return m, st
}

func TestAppendMessageStartsSession(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	require.Nil(t, m.Current())

	msg, err := m.AppendMessage(ctx, RoleUser, "안녕!", nil)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, msg.Role)
	assert.NotEmpty(t, msg.ID)
	assert.Nil(t, msg.ThinkingTime)

	current := m.Current()
	require.NotNil(t, current)
	assert.Len(t, current.Messages, 1)
	assert.Nil(t, current.EndedAt)
}

func TestThinkingTimeOnlyOnFairyMessages(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	seconds := 3
	msg, err := m.AppendMessage(ctx, RoleUser, "hello", &seconds)
	require.NoError(t, err)
	assert.Nil(t, msg.ThinkingTime, "thinking time dropped for user messages")

	msg, err = m.AppendMessage(ctx, RoleFairy, "hi!", &seconds)
	require.NoError(t, err)
	require.NotNil(t, msg.ThinkingTime)
	assert.Equal(t, 3, *msg.ThinkingTime)
}

func TestTimestampsNonDecreasing(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	for i := 0; i < 5; i++ {
		_, err := m.AppendMessage(ctx, RoleUser, "tick", nil)
		require.NoError(t, err)
	}

	msgs := m.Current().Messages
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].Timestamp.Before(msgs[i-1].Timestamp))
	}
}

func TestEndSessionArchivesNewestFirst(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.AppendMessage(ctx, RoleUser, "first session", nil)
	require.NoError(t, err)
	first, err := m.EndSession(ctx, 5, false)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotNil(t, first.EndedAt)
	assert.Equal(t, 5, first.AffectionGained)

	_, err = m.AppendMessage(ctx, RoleUser, "second session", nil)
	require.NoError(t, err)
	second, err := m.EndSession(ctx, 20, true)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.True(t, second.IsDeepConversation)

	archive := m.Sessions()
	require.Len(t, archive, 2)
	assert.Equal(t, second.ID, archive[0].ID, "newest first")
	assert.Equal(t, first.ID, archive[1].ID)
	assert.Nil(t, m.Current())
}

func TestEndSessionWithoutCurrentIsNoop(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	session, err := m.EndSession(ctx, 0, false)
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Empty(t, m.Sessions())
}

func TestStartSessionDiscardsUnfinished(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.AppendMessage(ctx, RoleUser, "abandoned", nil)
	require.NoError(t, err)
	abandoned := m.Current().ID

	fresh, err := m.StartSession(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, abandoned, fresh.ID)
	assert.Empty(t, fresh.Messages)
	assert.Empty(t, m.Sessions(), "abandoned session is not archived")
}

func TestAccrueAffection(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	// Without a current session nothing accrues.
	require.NoError(t, m.AccrueAffection(ctx, 5))

	_, err := m.AppendMessage(ctx, RoleUser, "hello", nil)
	require.NoError(t, err)
	require.NoError(t, m.AccrueAffection(ctx, 5))
	require.NoError(t, m.AccrueAffection(ctx, 15))

	assert.Equal(t, 20, m.Current().AffectionGained)
}

func TestClearHistory(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.AppendMessage(ctx, RoleUser, "hello", nil)
	require.NoError(t, err)
	_, err = m.EndSession(ctx, 5, false)
	require.NoError(t, err)
	_, err = m.AppendMessage(ctx, RoleUser, "again", nil)
	require.NoError(t, err)

	require.NoError(t, m.ClearHistory(ctx))
	assert.Nil(t, m.Current())
	assert.Empty(t, m.Sessions())
}

func TestManagerRehydrate(t *testing.T) {
	ctx := context.Background()
	st := store.NewCacheStore()

	m1, err := NewManager(ctx, st)
	require.NoError(t, err)
	_, err = m1.AppendMessage(ctx, RoleUser, "hello", nil)
	require.NoError(t, err)
	_, err = m1.EndSession(ctx, 5, false)
	require.NoError(t, err)
	_, err = m1.AppendMessage(ctx, RoleUser, "still open", nil)
	require.NoError(t, err)

	m2, err := NewManager(ctx, st)
	require.NoError(t, err)
	require.NotNil(t, m2.Current())
	assert.Len(t, m2.Current().Messages, 1)
	require.Len(t, m2.Sessions(), 1)
	assert.Equal(t, 5, m2.Sessions()[0].AffectionGained)
}

func TestCurrentReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.AppendMessage(ctx, RoleUser, "original", nil)
	require.NoError(t, err)

	snapshot := m.Current()
	snapshot.Messages[0].Content = "tampered"

	assert.Equal(t, "original", m.Current().Messages[0].Content)
}
