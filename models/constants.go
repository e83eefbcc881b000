package models

// ✅ DynamoDB table names
const (
	LikesTable         = "Likes"
	ConversationsTable = "Conversations"
	MessagesTable      = "Messages"
	BroadcastsTable    = "Broadcasts"
	UserProfilesTable  = "UserProfiles"
	FollowsTable       = "Follows"
)

// ✅ GSI used to answer "who follows me" without a scan
const FollowedIDIndex = "followedId-index"

// ✅ Like statuses. A record with no status field is legacy data and is
// treated as pending everywhere.
const (
	LikeStatusPending  = "pending"
	LikeStatusAccepted = "accepted"
	LikeStatusRejected = "rejected"
)

// ✅ Decisions the addressee of a like can make
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// ✅ Message types (seed messages are authored by the liker as "text")
const (
	MessageTypeText   = "text"
	MessageTypeSystem = "system"
)
