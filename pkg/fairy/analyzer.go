package fairy

import "saedam-be/pkg/companion/affection"

// depthThreshold is the minimum user-message length (in bytes) for a
// turn to count as a deep conversation.
// TODO: replace with a classifier once the depth-analysis model ships.
const depthThreshold = 50

// AnalyzeDepth classifies a turn as deep or routine.
func AnalyzeDepth(userMessage string) bool {
	return len(userMessage) > depthThreshold
}

// AnalyzeEmotionalIntensity scores the emotional weight of a message on
// a 0-100 scale. Currently a neutral placeholder pending the sentiment
// model.
func AnalyzeEmotionalIntensity(message string) int {
	return 50
}

// CalcAffection maps the depth classification to the fixed reason
// table: deep conversations reward more than routine ones.
func CalcAffection(isDeep bool) int {
	reason := affection.ReasonDailyConversation
	if isDeep {
		reason = affection.ReasonDeepConversation
	}
	points, _ := affection.PointsFor(reason)
	return points
}
