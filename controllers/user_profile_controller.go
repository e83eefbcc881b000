package controllers

import (
	"encoding/json"
	"net/http"

	"socialsound_server/models"
	"socialsound_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController struct
type UserProfileController struct {
	UserProfileService *services.UserProfileService
}

// NewUserProfileController initializes the controller
func NewUserProfileController(service *services.UserProfileService) *UserProfileController {
	return &UserProfileController{UserProfileService: service}
}

// CreateUserProfile - create a new profile
func (c *UserProfileController) CreateUserProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	created, err := c.UserProfileService.AddUserProfile(ctx, profile)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetUserProfileByID - fetch a profile by user id
func (c *UserProfileController) GetUserProfileByID(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	ctx, cancel := requestContext(r)
	defer cancel()

	profile, err := c.UserProfileService.GetUserProfile(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UpdateUserProfile - partial update of string fields
func (c *UserProfileController) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	profile, err := c.UserProfileService.UpdateUserProfile(ctx, userID, updates)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// DeleteUserProfile - remove a profile
func (c *UserProfileController) DeleteUserProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := c.UserProfileService.DeleteUserProfile(ctx, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
