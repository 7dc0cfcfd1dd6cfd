package dto

type ChatRequest struct {
	AnonymousID string `json:"anonymous_id" validate:"required,max=64"`
	Message     string `json:"message" validate:"required,max=2000"`
}

// ChatResponse is the wire shape the companion client consumes; the
// affection delta is authoritative.
type ChatResponse struct {
	Message           string `json:"message"`
	AffectionGained   int    `json:"affection_gained"`
	NewLevel          int    `json:"new_level"`
	NewPoints         int    `json:"new_points"`
	CommunityUnlocked bool   `json:"community_unlocked"`
}
