package affection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"saedam-be/pkg/companion/store"
)

// ErrUnknownReason reports an affection increase for a reason outside
// the fixed enumerated set. It is a caller bug and never silently
// ignored.
var ErrUnknownReason = errors.New("affection: unknown increase reason")

// Profile is the cumulative progression state for one user. Level is
// always LevelFor(Points); it is recomputed after every point change
// and never stored independently of that function.
type Profile struct {
	Level              int       `json:"level"`
	Points             int       `json:"points"`
	TotalConversations int       `json:"total_conversations"`
	DeepConversations  int       `json:"deep_conversations"`
	ConsecutiveDays    int       `json:"consecutive_days"`
	LastVisitDate      time.Time `json:"last_visit_date"`
	CreatedAt          time.Time `json:"created_at"`
}

func initialProfile(now time.Time) Profile {
	return Profile{
		Level:         MinLevel,
		LastVisitDate: now,
		CreatedAt:     now,
	}
}

// Engine owns a single Profile and applies the deterministic
// progression rules to it. Every mutator ends by writing the full
// profile document through to the state store; a failed write is
// surfaced to the caller while the in-memory state stays authoritative
// for the running process.
//
// The engine expects single-threaded use: the surrounding application
// drives all mutations from one logical thread of control.
type Engine struct {
	store   store.StateStore
	profile Profile
}

// NewEngine rehydrates the profile from the store, falling back to the
// initial profile when no document exists. Missing fields in a stored
// document default to the initial values; the level is always
// recomputed from points on load.
func NewEngine(ctx context.Context, st store.StateStore) (*Engine, error) {
	e := &Engine{store: st, profile: initialProfile(time.Now())}

	doc, found, err := st.Load(ctx, store.KeyAffectionProfile)
	if err != nil {
		return nil, fmt.Errorf("load affection profile: %w", err)
	}
	if found {
		var loaded Profile
		if err := json.Unmarshal(doc, &loaded); err != nil {
			return nil, fmt.Errorf("decode affection profile: %w", err)
		}
		now := time.Now()
		if loaded.CreatedAt.IsZero() {
			loaded.CreatedAt = now
		}
		if loaded.LastVisitDate.IsZero() {
			loaded.LastVisitDate = loaded.CreatedAt
		}
		loaded.Level = LevelFor(loaded.Points)
		e.profile = loaded
	}
	return e, nil
}

// Profile returns a snapshot of the current state.
func (e *Engine) Profile() Profile {
	return e.profile
}

// AddPoints adds a non-negative delta to the point total and recomputes
// the level. A delta of zero (or less) leaves the profile unchanged;
// points never decrease outside Reset.
func (e *Engine) AddPoints(ctx context.Context, delta int) (Profile, error) {
	if delta <= 0 {
		return e.profile, nil
	}
	e.apply(delta)
	return e.profile, e.save(ctx)
}

// IncreaseForReason adds the fixed point value for a known reason.
func (e *Engine) IncreaseForReason(ctx context.Context, reason Reason) (Profile, error) {
	points, ok := PointsFor(reason)
	if !ok {
		return e.profile, fmt.Errorf("%w: %q", ErrUnknownReason, reason)
	}
	return e.AddPoints(ctx, points)
}

// RecordConversation increments the conversation counters.
func (e *Engine) RecordConversation(ctx context.Context, isDeep bool) (Profile, error) {
	e.profile.TotalConversations++
	if isDeep {
		e.profile.DeepConversations++
	}
	return e.profile, e.save(ctx)
}

// RecordVisit applies the daily-visit streak rules for a visit at now.
// A one-day gap extends the streak and awards the consecutive-visit
// bonus; a longer gap resets the streak to one; a same-day revisit (or
// clock skew) changes nothing. The last visit date always advances to
// now.
func (e *Engine) RecordVisit(ctx context.Context, now time.Time) (Profile, error) {
	gap := CalendarDays(e.profile.LastVisitDate, now)
	streak, bonus := NextStreak(e.profile.ConsecutiveDays, gap)

	e.profile.ConsecutiveDays = streak
	e.profile.LastVisitDate = now
	if bonus > 0 {
		e.apply(bonus)
	}
	return e.profile, e.save(ctx)
}

// LevelProgress reports the position inside the active level band.
func (e *Engine) LevelProgress() Progress {
	return ProgressFor(e.profile.Points)
}

// Reset returns the profile to its initial state. Debug/test use only.
func (e *Engine) Reset(ctx context.Context) (Profile, error) {
	e.profile = initialProfile(time.Now())
	return e.profile, e.save(ctx)
}

func (e *Engine) apply(delta int) {
	e.profile.Points += delta
	e.profile.Level = LevelFor(e.profile.Points)
}

func (e *Engine) save(ctx context.Context) error {
	doc, err := json.Marshal(e.profile)
	if err != nil {
		return fmt.Errorf("encode affection profile: %w", err)
	}
	if err := e.store.Save(ctx, store.KeyAffectionProfile, doc); err != nil {
		return fmt.Errorf("persist affection profile: %w", err)
	}
	return nil
}
