package routes

import (
	"socialsound_server/controllers"
	"socialsound_server/services"

	"github.com/gorilla/mux"
)

// RegisterLikeRoutes sets up routes for like and decide operations under /api/likes
func RegisterLikeRoutes(r *mux.Router, likeService *services.LikeService, workflowService *services.WorkflowService) {
	controller := controllers.NewLikeController(likeService, workflowService)

	likeRouter := r.PathPrefix("/api/likes").Subrouter()
	likeRouter.HandleFunc("", controller.HandleCreateLike).Methods("POST")
	likeRouter.HandleFunc("/received", controller.HandleGetReceived).Methods("GET")
	likeRouter.HandleFunc("/given", controller.HandleGetGiven).Methods("GET")
	likeRouter.HandleFunc("/decide", controller.HandleDecide).Methods("POST")
	likeRouter.HandleFunc("/repair-conversation", controller.HandleRepairConversation).Methods("POST")
}
