package routes

import (
	"socialsound_server/controllers"
	"socialsound_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for user profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileService *services.UserProfileService) {
	controller := controllers.NewUserProfileController(userProfileService)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.CreateUserProfile).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.GetUserProfileByID).Methods("GET")
	profileRouter.HandleFunc("/{userId}", controller.UpdateUserProfile).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}", controller.DeleteUserProfile).Methods("DELETE")
}
