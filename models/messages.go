package models

// Message is one chat message inside a conversation. Immutable once
// created (read state lives in isUnread, which is the only field updated
// afterwards).
type Message struct {
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	// SK is the table sort key, createdAt + "#" + messageId. The
	// timestamp prefix keeps range reads in time order and the id
	// suffix keeps same-second sends from colliding.
	SK        string `dynamodbav:"SK" json:"-"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	MessageID string `dynamodbav:"messageId" json:"messageId"`
	SenderID  string `dynamodbav:"senderId" json:"senderId"`
	Text      string `dynamodbav:"text" json:"text"`
	Type      string `dynamodbav:"type" json:"type"`
	IsUnread  string `dynamodbav:"isUnread" json:"isUnread"`
}

// MessageSK builds the composite sort key for a message.
func MessageSK(createdAt, messageID string) string {
	return createdAt + "#" + messageID
}

// SetIsUnread stores the unread flag as a lowercase string, matching how
// older records were written by earlier clients.
func (m *Message) SetIsUnread(unread bool) {
	if unread {
		m.IsUnread = "true"
	} else {
		m.IsUnread = "false"
	}
}

// Unread reports the unread flag, tolerating mixed-case legacy values.
func (m *Message) Unread() bool {
	return m.IsUnread == "true" || m.IsUnread == "True"
}
