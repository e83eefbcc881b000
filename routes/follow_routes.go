package routes

import (
	"socialsound_server/controllers"
	"socialsound_server/services"

	"github.com/gorilla/mux"
)

// RegisterFollowRoutes sets up routes for follow operations under /api/follows
func RegisterFollowRoutes(r *mux.Router, followService *services.FollowService) {
	controller := controllers.NewFollowController(followService)

	followRouter := r.PathPrefix("/api/follows").Subrouter()
	followRouter.HandleFunc("", controller.HandleFollow).Methods("POST")
	followRouter.HandleFunc("", controller.HandleUnfollow).Methods("DELETE")
	followRouter.HandleFunc("/following", controller.HandleGetFollowing).Methods("GET")
	followRouter.HandleFunc("/followers", controller.HandleGetFollowers).Methods("GET")
}
