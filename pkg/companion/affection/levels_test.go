package affection

import (
	"testing"
	"time"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   int
	}{
		{"zero points", 0, 1},
		{"just below level 2", 29, 1},
		{"exact level 2 threshold", 30, 2},
		{"mid band", 100, 3},
		{"exact level 4 threshold", 120, 4},
		{"just below terminal", 629, 9},
		{"terminal threshold", 630, 10},
		{"beyond terminal", 10000, 10},
		{"negative points clamp to min", -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelFor(tt.points); got != tt.want {
				t.Errorf("LevelFor(%d) = %d, want %d", tt.points, got, tt.want)
			}
		})
	}
}

func TestLevelForMonotonic(t *testing.T) {
	prev := MinLevel
	for points := 0; points <= 700; points++ {
		level := LevelFor(points)
		if level < prev {
			t.Fatalf("level decreased from %d to %d at %d points", prev, level, points)
		}
		prev = level
	}
}

func TestThresholdFor(t *testing.T) {
	if got := ThresholdFor(1); got != 0 {
		t.Errorf("ThresholdFor(1) = %d, want 0", got)
	}
	if got := ThresholdFor(10); got != 630 {
		t.Errorf("ThresholdFor(10) = %d, want 630", got)
	}
	// Out-of-range levels clamp.
	if got := ThresholdFor(0); got != 0 {
		t.Errorf("ThresholdFor(0) = %d, want 0", got)
	}
	if got := ThresholdFor(99); got != 630 {
		t.Errorf("ThresholdFor(99) = %d, want 630", got)
	}
}

func TestProgressFor(t *testing.T) {
	tests := []struct {
		name   string
		points int
		want   Progress
	}{
		{"fresh profile", 0, Progress{Current: 0, Needed: 30, Percentage: 0}},
		{"half through level 1", 15, Progress{Current: 15, Needed: 30, Percentage: 50}},
		{"start of level 2", 30, Progress{Current: 0, Needed: 40, Percentage: 0}},
		{"truncated percentage", 20, Progress{Current: 20, Needed: 30, Percentage: 66}},
		{"terminal level", 630, Progress{Current: 630, Needed: 630, Percentage: 100}},
		{"past terminal", 700, Progress{Current: 700, Needed: 630, Percentage: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressFor(tt.points); got != tt.want {
				t.Errorf("ProgressFor(%d) = %+v, want %+v", tt.points, got, tt.want)
			}
		})
	}
}

func TestPointsFor(t *testing.T) {
	tests := []struct {
		reason Reason
		points int
		ok     bool
	}{
		{ReasonDailyConversation, 5, true},
		{ReasonDeepConversation, 15, true},
		{ReasonConsecutiveVisit, 10, true},
		{ReasonSincereSharing, 20, true},
		{Reason("bribery"), 0, false},
	}

	for _, tt := range tests {
		points, ok := PointsFor(tt.reason)
		if points != tt.points || ok != tt.ok {
			t.Errorf("PointsFor(%q) = (%d, %v), want (%d, %v)", tt.reason, points, ok, tt.points, tt.ok)
		}
	}
}

func TestCalendarDays(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			"same day different hours",
			time.Date(2025, 3, 10, 1, 0, 0, 0, seoul),
			time.Date(2025, 3, 10, 23, 59, 0, 0, seoul),
			0,
		},
		{
			"just past midnight",
			time.Date(2025, 3, 10, 23, 59, 0, 0, seoul),
			time.Date(2025, 3, 11, 0, 1, 0, 0, seoul),
			1,
		},
		{
			"week gap",
			time.Date(2025, 3, 10, 12, 0, 0, 0, seoul),
			time.Date(2025, 3, 17, 12, 0, 0, 0, seoul),
			7,
		},
		{
			"clock moved backwards",
			time.Date(2025, 3, 11, 9, 0, 0, 0, seoul),
			time.Date(2025, 3, 10, 9, 0, 0, 0, seoul),
			-1,
		},
		{
			"cross-zone instants on the caller's calendar",
			time.Date(2025, 3, 10, 23, 0, 0, 0, seoul),
			time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC), // 11 Mar 00:00 KST
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalendarDays(tt.from, tt.to); got != tt.want {
				t.Errorf("CalendarDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name       string
		streak     int
		gap        int
		wantStreak int
		wantBonus  int
	}{
		{"same day revisit", 4, 0, 4, 0},
		{"next day extends", 4, 1, 5, 10},
		{"two day gap resets", 4, 2, 1, 0},
		{"long gap resets", 30, 14, 1, 0},
		{"clock skew leaves streak alone", 4, -1, 4, 0},
		{"first ever next-day visit", 0, 1, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak, bonus := NextStreak(tt.streak, tt.gap)
			if streak != tt.wantStreak || bonus != tt.wantBonus {
				t.Errorf("NextStreak(%d, %d) = (%d, %d), want (%d, %d)",
					tt.streak, tt.gap, streak, bonus, tt.wantStreak, tt.wantBonus)
			}
		})
	}
}
