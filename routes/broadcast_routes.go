package routes

import (
	"socialsound_server/controllers"
	"socialsound_server/services"

	"github.com/gorilla/mux"
)

// RegisterBroadcastRoutes sets up routes for presence operations under /api/broadcasts
func RegisterBroadcastRoutes(r *mux.Router, broadcastService *services.BroadcastService) {
	controller := controllers.NewBroadcastController(broadcastService)

	broadcastRouter := r.PathPrefix("/api/broadcasts").Subrouter()
	broadcastRouter.HandleFunc("", controller.HandleUpsertBroadcast).Methods("POST")
	broadcastRouter.HandleFunc("/nearby", controller.HandleNearbyBroadcasts).Methods("GET")
	broadcastRouter.HandleFunc("/{userId}", controller.HandleGetBroadcast).Methods("GET")
	broadcastRouter.HandleFunc("/{userId}", controller.HandleStopBroadcast).Methods("DELETE")
}
