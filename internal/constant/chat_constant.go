package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleFairy = "fairy"

	// ChatHistoryWindow is how many stored messages are loaded as
	// context for a new turn.
	ChatHistoryWindow = 20

	// CommunityUnlockLevel is the affection level that opens the
	// parent community.
	CommunityUnlockLevel = 10
)
