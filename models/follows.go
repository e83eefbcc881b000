package models

// Follow is a one-directional edge: follower → followed. Keyed by the
// follower's partition so "who do I follow" is a prefix query; the reverse
// direction goes through the followedId GSI.
type Follow struct {
	PK         string `dynamodbav:"PK" json:"-"` // USER#<followerId>
	SK         string `dynamodbav:"SK" json:"-"` // FOLLOWS#<followedId>
	FollowerID string `dynamodbav:"followerId" json:"followerId"`
	FollowedID string `dynamodbav:"followedId" json:"followedId"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// FollowSK builds the sort key for a follow edge.
func FollowSK(followedID string) string { return "FOLLOWS#" + followedID }
