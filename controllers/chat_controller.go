package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"socialsound_server/models"
	"socialsound_server/services"

	"github.com/google/uuid"
)

// ChatController struct
type ChatController struct {
	ChatService         *services.ChatService
	ConversationService *services.ConversationService
}

// NewChatController initializes the chat controller
func NewChatController(chatService *services.ChatService, conversationService *services.ConversationService) *ChatController {
	return &ChatController{ChatService: chatService, ConversationService: conversationService}
}

// HandleGetMessages - fetch messages for a conversation
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := r.URL.Query().Get("conversationId")
	limitStr := r.URL.Query().Get("limit")

	if conversationID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "conversationId is required"})
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 50
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	messages, err := c.ChatService.GetMessages(ctx, conversationID, limit)
	if err != nil {
		log.Printf("❌ Error fetching messages: %v", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

// HandleSendMessage - store a new message in a conversation
func (c *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	var message models.Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if message.ConversationID == "" || message.SenderID == "" || message.Text == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "missing required fields: conversationId, senderId, or text"})
		return
	}

	if message.MessageID == "" {
		message.MessageID = uuid.NewString()
	}
	message.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := c.ChatService.SendMessage(ctx, message); err != nil {
		log.Printf("❌ Failed to send message: %v", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, message)
}

// HandleMarkMessagesAsRead - mark messages received by a user as read
func (c *ChatController) HandleMarkMessagesAsRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConversationID string `json:"conversationId"`
		UserID         string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.ConversationID == "" || request.UserID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "conversationId and userId are required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := c.ChatService.MarkMessagesAsRead(ctx, request.ConversationID, request.UserID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleGetConversations - list a user's conversations, newest first
func (c *ChatController) HandleGetConversations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	conversations, err := c.ConversationService.GetConversationsForUser(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conversations)
}

// HandleUnreadCounts - per-conversation unread counts plus the badge total
func (c *ChatController) HandleUnreadCounts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	counts, total, err := c.ChatService.CountUnread(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"conversations": counts,
		"total":         total,
	})
}
