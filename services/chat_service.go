package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"socialsound_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService handles messages inside conversations.
type ChatService struct {
	Dynamo        DocumentStore
	Conversations *ConversationService
}

// GetMessages fetches messages for a conversation, newest first.
func (s *ChatService) GetMessages(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	keyCondition := "conversationId = :cid"
	expressionValues := map[string]types.AttributeValue{
		":cid": &types.AttributeValueMemberS{Value: conversationID},
	}

	items, err := s.Dynamo.QueryItemsWithOptions(ctx, models.MessagesTable, keyCondition, expressionValues, nil, int32(limit), true)
	if err != nil {
		return nil, remoteErr("GetMessages", conversationID, err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt != messages[j].CreatedAt {
			return messages[i].CreatedAt > messages[j].CreatedAt
		}
		return messages[i].SK > messages[j].SK
	})

	log.Printf("✅ Found %d messages for conversation %s", len(messages), conversationID)
	return messages, nil
}

// SendMessage stores a new message and rolls the conversation's
// lastMessage fields forward.
func (s *ChatService) SendMessage(ctx context.Context, message models.Message) error {
	if message.ConversationID == "" || message.SenderID == "" || message.Text == "" {
		return fmt.Errorf("missing required message fields")
	}
	if message.Type == "" {
		message.Type = models.MessageTypeText
	}
	if message.MessageID == "" {
		message.MessageID = uuid.NewString()
	}
	// The id suffix keeps two sends in the same second on distinct keys.
	message.SK = models.MessageSK(message.CreatedAt, message.MessageID)
	message.SetIsUnread(true)

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return remoteErr("SendMessage", message.ConversationID, err)
	}

	if err := s.Conversations.updateLastMessage(ctx, message.ConversationID, message.Text, message.CreatedAt, message.SenderID); err != nil {
		return err
	}

	log.Printf("📩 Message %s stored in conversation %s", message.MessageID, message.ConversationID)
	return nil
}

// MarkMessagesAsRead flips isUnread on every message in the conversation
// that the given user did not send.
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, conversationID, userID string) error {
	keyCondition := "conversationId = :cid"
	expressionValues := map[string]types.AttributeValue{
		":cid": &types.AttributeValueMemberS{Value: conversationID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.MessagesTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return remoteErr("MarkMessagesAsRead", conversationID, err)
	}

	for _, item := range items {
		var message models.Message
		if err := attributevalue.UnmarshalMap(item, &message); err != nil {
			log.Printf("⚠️ Skipping undecodable message in %s: %v", conversationID, err)
			continue
		}
		if message.SenderID == userID || !message.Unread() {
			continue
		}

		key := map[string]types.AttributeValue{
			"conversationId": &types.AttributeValueMemberS{Value: conversationID},
			"SK":             &types.AttributeValueMemberS{Value: message.SK},
		}
		updateExpression := "SET isUnread = :false"
		updateValues := map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberS{Value: "false"},
		}

		if _, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, key, updateValues, nil); err != nil {
			log.Printf("❌ Failed to mark message %s as read: %v", message.MessageID, err)
		}
	}

	log.Printf("✅ Marked messages as read in %s for %s", conversationID, userID)
	return nil
}

// CountUnread returns per-conversation unread counts for a user plus the
// total, the source of the badge number.
func (s *ChatService) CountUnread(ctx context.Context, userID string) (map[string]int, int, error) {
	conversations, err := s.Conversations.GetConversationsForUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[string]int, len(conversations))
	total := 0
	for _, conversation := range conversations {
		messages, err := s.GetMessages(ctx, conversation.ConversationID, 50)
		if err != nil {
			log.Printf("⚠️ Skipping unread count for %s: %v", conversation.ConversationID, err)
			continue
		}
		unread := 0
		for _, message := range messages {
			if message.SenderID != userID && message.Unread() {
				unread++
			}
		}
		if unread > 0 {
			counts[conversation.ConversationID] = unread
			total += unread
		}
	}

	return counts, total, nil
}
