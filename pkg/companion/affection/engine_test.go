package affection

import (
	"context"
	"errors"
	"testing"
	"time"

	"saedam-be/pkg/companion/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore fails every write while still serving reads.
type brokenStore struct {
	store.StateStore
	saveErr error
}

func (s *brokenStore) Save(ctx context.Context, key string, value []byte) error {
	return s.saveErr
}

func newTestEngine(t *testing.T) (*Engine, store.StateStore) {
	t.Helper()
	st := store.NewCacheStore()
	e, err := NewEngine(context.Background(), st)
	require.NoError(t, err)
	return e, st
}

func TestEngineFreshProfile(t *testing.T) {
	e, _ := newTestEngine(t)

	p := e.Profile()
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.Points)
	assert.Equal(t, 0, p.ConsecutiveDays)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.LastVisitDate)
}

func TestEngineAddPoints(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	p, err := e.AddPoints(ctx, 15)
	require.NoError(t, err)
	assert.Equal(t, 15, p.Points)
	assert.Equal(t, 1, p.Level)

	p, err = e.AddPoints(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Points)
	assert.Equal(t, 1, p.Level)

	// Zero and negative deltas change nothing.
	p, err = e.AddPoints(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Points)
	p, err = e.AddPoints(ctx, -10)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Points)
}

func TestEngineLevelUp(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	p, err := e.AddPoints(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Level)

	p, err = e.AddPoints(ctx, 600)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Level)
	assert.Equal(t, 100, e.LevelProgress().Percentage)
}

func TestEngineIncreaseForReason(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	p, err := e.IncreaseForReason(ctx, ReasonSincereSharing)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Points)

	_, err = e.IncreaseForReason(ctx, Reason("flattery"))
	assert.ErrorIs(t, err, ErrUnknownReason)
	assert.Equal(t, 20, e.Profile().Points, "failed increase must not change points")
}

func TestEngineRecordConversation(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	p, err := e.RecordConversation(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalConversations)
	assert.Equal(t, 0, p.DeepConversations)

	p, err = e.RecordConversation(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalConversations)
	assert.Equal(t, 1, p.DeepConversations)
	assert.Equal(t, 0, p.Points, "counters do not award points")
}

func TestEngineRecordVisit(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	t.Run("same day revisit changes nothing but the date", func(t *testing.T) {
		e, _ := newTestEngine(t)
		_, err := e.RecordVisit(ctx, day1)
		require.NoError(t, err)

		later := day1.Add(8 * time.Hour)
		p, err := e.RecordVisit(ctx, later)
		require.NoError(t, err)
		assert.Equal(t, later, p.LastVisitDate)
		assert.Equal(t, 0, p.Points)
	})

	t.Run("next day extends streak and pays the bonus", func(t *testing.T) {
		e, _ := newTestEngine(t)
		_, err := e.RecordVisit(ctx, day1)
		require.NoError(t, err)
		streak := e.Profile().ConsecutiveDays

		p, err := e.RecordVisit(ctx, day1.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Equal(t, streak+1, p.ConsecutiveDays)
		assert.Equal(t, 10, p.Points)
	})

	t.Run("two day gap resets the streak", func(t *testing.T) {
		e, _ := newTestEngine(t)
		_, err := e.RecordVisit(ctx, day1)
		require.NoError(t, err)
		_, err = e.RecordVisit(ctx, day1.AddDate(0, 0, 1))
		require.NoError(t, err)

		p, err := e.RecordVisit(ctx, day1.AddDate(0, 0, 3))
		require.NoError(t, err)
		assert.Equal(t, 1, p.ConsecutiveDays)
		assert.Equal(t, 10, p.Points, "reset awards no bonus")
		assert.Equal(t, day1.AddDate(0, 0, 3), p.LastVisitDate)
	})
}

func TestEngineRehydrate(t *testing.T) {
	ctx := context.Background()
	st := store.NewCacheStore()

	e1, err := NewEngine(ctx, st)
	require.NoError(t, err)
	_, err = e1.AddPoints(ctx, 75)
	require.NoError(t, err)
	_, err = e1.RecordConversation(ctx, true)
	require.NoError(t, err)

	e2, err := NewEngine(ctx, st)
	require.NoError(t, err)
	p := e2.Profile()
	assert.Equal(t, 75, p.Points)
	assert.Equal(t, 3, p.Level, "level recomputed from points on load")
	assert.Equal(t, 1, p.TotalConversations)
	assert.Equal(t, 1, p.DeepConversations)
}

func TestEnginePersistFailure(t *testing.T) {
	ctx := context.Background()
	saveErr := errors.New("disk full")
	st := &brokenStore{StateStore: store.NewCacheStore(), saveErr: saveErr}

	e, err := NewEngine(ctx, st)
	require.NoError(t, err)

	p, err := e.AddPoints(ctx, 25)
	assert.ErrorIs(t, err, saveErr)
	assert.Equal(t, 25, p.Points, "in-memory state stays authoritative")
	assert.Equal(t, 25, e.Profile().Points)
}

func TestEngineReset(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	_, err := e.AddPoints(ctx, 200)
	require.NoError(t, err)
	_, err = e.RecordConversation(ctx, true)
	require.NoError(t, err)

	p, err := e.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.Points)
	assert.Equal(t, 0, p.TotalConversations)
}
