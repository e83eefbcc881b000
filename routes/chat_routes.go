package routes

import (
	"socialsound_server/controllers"
	"socialsound_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for chat-related operations under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService, conversationService *services.ConversationService) {
	controller := controllers.NewChatController(chatService, conversationService)

	chatRouter := r.PathPrefix("/api/chat").Subrouter()
	chatRouter.HandleFunc("/message", controller.HandleSendMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
	chatRouter.HandleFunc("/messages/mark-as-read", controller.HandleMarkMessagesAsRead).Methods("POST")
	chatRouter.HandleFunc("/conversations", controller.HandleGetConversations).Methods("GET")
	chatRouter.HandleFunc("/unread-counts", controller.HandleUnreadCounts).Methods("GET")
}
