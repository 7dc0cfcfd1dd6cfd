package affection

import "time"

// Reason is a fixed category for an affection increase. The mapping to
// point values is closed: every reason has exactly one statically known
// value.
type Reason string

const (
	ReasonDailyConversation Reason = "daily_conversation"
	ReasonDeepConversation  Reason = "deep_conversation"
	ReasonConsecutiveVisit  Reason = "consecutive_visit"
	ReasonSincereSharing    Reason = "sincere_sharing"
)

// reasonPoints maps each reason to its fixed point value.
var reasonPoints = map[Reason]int{
	ReasonDailyConversation: 5,
	ReasonDeepConversation:  15,
	ReasonConsecutiveVisit:  10,
	ReasonSincereSharing:    20,
}

// PointsFor returns the fixed point value for a reason.
func PointsFor(reason Reason) (int, bool) {
	points, ok := reasonPoints[reason]
	return points, ok
}

const (
	MinLevel = 1
	MaxLevel = 10
)

// levelThresholds[i] is the cumulative point total required to reach
// level i+1. Strictly increasing; level 1 requires 0 points.
var levelThresholds = [MaxLevel]int{0, 30, 70, 120, 180, 250, 330, 420, 520, 630}

// LevelFor returns the greatest level whose threshold is satisfied by
// points.
func LevelFor(points int) int {
	for level := MaxLevel; level > MinLevel; level-- {
		if points >= levelThresholds[level-1] {
			return level
		}
	}
	return MinLevel
}

// ThresholdFor returns the cumulative points required to reach level.
// Levels outside [MinLevel, MaxLevel] are clamped.
func ThresholdFor(level int) int {
	if level < MinLevel {
		level = MinLevel
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return levelThresholds[level-1]
}

// Progress describes the position inside the current level band.
type Progress struct {
	Current    int `json:"current"`
	Needed     int `json:"needed"`
	Percentage int `json:"percentage"`
}

// ProgressFor computes the progress toward the next level for a point
// total. At the terminal level the percentage is pinned to 100 and
// Needed reports the terminal threshold.
func ProgressFor(points int) Progress {
	level := LevelFor(points)
	if level == MaxLevel {
		return Progress{Current: points, Needed: ThresholdFor(MaxLevel), Percentage: 100}
	}

	floor := ThresholdFor(level)
	needed := ThresholdFor(level+1) - floor
	current := points - floor

	return Progress{
		Current:    current,
		Needed:     needed,
		Percentage: current * 100 / needed,
	}
}

// CalendarDays returns the number of whole calendar days between two
// instants, ignoring the time of day. Negative when to precedes from.
func CalendarDays(from, to time.Time) int {
	loc := from.Location()
	to = to.In(loc)
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)
	days := t.Sub(f).Hours() / 24
	// Round instead of truncate so a DST-shortened day still counts as one.
	if days >= 0 {
		return int(days + 0.5)
	}
	return int(days - 0.5)
}

// NextStreak applies the consecutive-visit rules to a streak counter.
// It returns the new streak value and the bonus points awarded, given
// the whole-day gap since the previous visit. Same-day revisits and
// clock skew (negative gaps) leave the streak unchanged and award
// nothing.
func NextStreak(streak, daysGap int) (int, int) {
	switch {
	case daysGap == 1:
		bonus, _ := PointsFor(ReasonConsecutiveVisit)
		return streak + 1, bonus
	case daysGap > 1:
		return 1, 0
	default:
		return streak, 0
	}
}
