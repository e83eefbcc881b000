package controllers

import (
	"encoding/json"
	"net/http"

	"socialsound_server/services"
)

// FollowController struct
type FollowController struct {
	FollowService *services.FollowService
}

// NewFollowController initializes the controller
func NewFollowController(service *services.FollowService) *FollowController {
	return &FollowController{FollowService: service}
}

type followRequest struct {
	FollowerID string `json:"followerId"`
	FollowedID string `json:"followedId"`
}

// HandleFollow - follower starts following followed
func (c *FollowController) HandleFollow(w http.ResponseWriter, r *http.Request) {
	var request followRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.FollowerID == "" || request.FollowedID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "followerId and followedId are required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := c.FollowService.Follow(ctx, request.FollowerID, request.FollowedID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleUnfollow - remove a follow edge
func (c *FollowController) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	var request followRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.FollowerID == "" || request.FollowedID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "followerId and followedId are required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := c.FollowService.Unfollow(ctx, request.FollowerID, request.FollowedID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleGetFollowing - who a user follows
func (c *FollowController) HandleGetFollowing(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	following, err := c.FollowService.GetFollowing(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, following)
}

// HandleGetFollowers - who follows a user
func (c *FollowController) HandleGetFollowers(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	followers, err := c.FollowService.GetFollowers(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, followers)
}
