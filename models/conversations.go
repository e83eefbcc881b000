package models

// Conversation is a two-party messaging thread. Its id is the canonical
// pair id of the participants, so any (a, b) ordering resolves to the
// same document and creation can be made idempotent.
type Conversation struct {
	ConversationID string   `dynamodbav:"conversationId" json:"conversationId"`
	ParticipantIDs []string `dynamodbav:"participantIds" json:"participantIds"`

	CreatedFromLikeID  string `dynamodbav:"createdFromLikeId,omitempty" json:"createdFromLikeId,omitempty"`
	CreatedFromTrackID string `dynamodbav:"createdFromTrackId,omitempty" json:"createdFromTrackId,omitempty"`

	LastMessageText     string `dynamodbav:"lastMessageText,omitempty" json:"lastMessageText,omitempty"`
	LastMessageAt       string `dynamodbav:"lastMessageAt,omitempty" json:"lastMessageAt,omitempty"`
	LastMessageSenderID string `dynamodbav:"lastMessageSenderId,omitempty" json:"lastMessageSenderId,omitempty"`

	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}
