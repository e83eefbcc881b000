package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"socialsound_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ConversationService owns the conversation records and their idempotent
// creation from accepted likes.
type ConversationService struct {
	Dynamo DocumentStore
}

// CanonicalPairID derives the conversation id for two users: lowercase
// both ids, order lexicographically, join with "_". Symmetric, so any
// (a, b) call order lands on the same document.
func CanonicalPairID(a, b string) string {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}

// EnsureConversation makes sure a conversation exists between the receiver
// and the liker, seeding the first message from the like's note when there
// is one. Safe to call any number of times: an existing conversation only
// gets its updatedAt touched and the seed message is never duplicated.
func (s *ConversationService) EnsureConversation(ctx context.Context, like *models.Like, receiverUserID string) (*models.Conversation, error) {
	conversationID := CanonicalPairID(receiverUserID, like.FromUserID)
	now := time.Now().UTC().Format(time.RFC3339)

	existing, err := s.GetConversation(ctx, conversationID)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	if existing == nil {
		conversation := models.Conversation{
			ConversationID:     conversationID,
			ParticipantIDs:     []string{receiverUserID, like.FromUserID},
			CreatedFromLikeID:  like.LikeID,
			CreatedFromTrackID: like.TrackID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := s.Dynamo.PutItem(ctx, models.ConversationsTable, conversation); err != nil {
			return nil, remoteErr("EnsureConversation", conversationID, err)
		}
		log.Printf("🎉 Conversation %s created from like %s", conversationID, like.LikeID)
	} else {
		// Touch updatedAt only; participants and createdAt stay put.
		if err := s.touch(ctx, conversationID, now); err != nil {
			return nil, err
		}
	}

	if err := s.seedMessageIfEmpty(ctx, conversationID, like, now); err != nil {
		return nil, err
	}

	// Re-read so the caller sees exactly what the store holds.
	return s.GetConversation(ctx, conversationID)
}

// seedMessageIfEmpty writes the like's note as the first chat message,
// attributed to the liker. A bounded existence query guards against
// duplicating the seed on retries.
func (s *ConversationService) seedMessageIfEmpty(ctx context.Context, conversationID string, like *models.Like, now string) error {
	text := strings.TrimSpace(like.Message)
	if text == "" {
		return nil
	}

	keyCondition := "conversationId = :cid"
	expressionValues := map[string]types.AttributeValue{
		":cid": &types.AttributeValueMemberS{Value: conversationID},
	}
	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return remoteErr("SeedMessage", conversationID, err)
	}
	if len(items) > 0 {
		return nil
	}

	message := models.Message{
		ConversationID: conversationID,
		CreatedAt:      now,
		MessageID:      uuid.NewString(),
		SenderID:       like.FromUserID,
		Text:           text,
		Type:           models.MessageTypeText,
	}
	message.SK = models.MessageSK(message.CreatedAt, message.MessageID)
	message.SetIsUnread(true)

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return remoteErr("SeedMessage", conversationID, err)
	}

	if err := s.updateLastMessage(ctx, conversationID, text, now, like.FromUserID); err != nil {
		return err
	}

	log.Printf("📩 Seeded conversation %s with like message from %s", conversationID, like.FromUserID)
	return nil
}

// GetConversation loads one conversation, ErrNotFound when absent.
func (s *ConversationService) GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	key := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.ConversationsTable, key)
	if err != nil {
		return nil, remoteErr("GetConversation", conversationID, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	var conversation models.Conversation
	if err := attributevalue.UnmarshalMap(item, &conversation); err != nil {
		return nil, remoteErr("GetConversation", conversationID, err)
	}
	return &conversation, nil
}

// GetConversationsForUser returns every conversation the user participates
// in, most recently updated first. Backs the inbox screen.
func (s *ConversationService) GetConversationsForUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation

	err := s.Dynamo.ScanWithFilter(ctx, models.ConversationsTable, func(item map[string]types.AttributeValue) bool {
		var c models.Conversation
		if err := attributevalue.UnmarshalMap(item, &c); err != nil {
			return false
		}
		return c.HasParticipant(userID)
	}, nil, &conversations)
	if err != nil {
		return nil, remoteErr("GetConversationsForUser", userID, err)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].UpdatedAt > conversations[j].UpdatedAt
	})

	log.Printf("✅ Found %d conversations for %s", len(conversations), userID)
	return conversations, nil
}

func (s *ConversationService) touch(ctx context.Context, conversationID, now string) error {
	key := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
	updateExpression := "SET #updatedAt = :updatedAt"
	expressionValues := map[string]types.AttributeValue{
		":updatedAt": &types.AttributeValueMemberS{Value: now},
	}
	expressionNames := map[string]string{"#updatedAt": "updatedAt"}

	if _, err := s.Dynamo.UpdateItem(ctx, models.ConversationsTable, updateExpression, key, expressionValues, expressionNames); err != nil {
		return remoteErr("TouchConversation", conversationID, err)
	}
	return nil
}

func (s *ConversationService) updateLastMessage(ctx context.Context, conversationID, text, at, senderID string) error {
	key := map[string]types.AttributeValue{
		"conversationId": &types.AttributeValueMemberS{Value: conversationID},
	}
	updateExpression := "SET #lastMessageText = :text, #lastMessageAt = :at, #lastMessageSenderId = :sender, #updatedAt = :at"
	expressionValues := map[string]types.AttributeValue{
		":text":   &types.AttributeValueMemberS{Value: text},
		":at":     &types.AttributeValueMemberS{Value: at},
		":sender": &types.AttributeValueMemberS{Value: senderID},
	}
	expressionNames := map[string]string{
		"#lastMessageText":     "lastMessageText",
		"#lastMessageAt":       "lastMessageAt",
		"#lastMessageSenderId": "lastMessageSenderId",
		"#updatedAt":           "updatedAt",
	}

	if _, err := s.Dynamo.UpdateItem(ctx, models.ConversationsTable, updateExpression, key, expressionValues, expressionNames); err != nil {
		return remoteErr("UpdateLastMessage", conversationID, err)
	}
	return nil
}
