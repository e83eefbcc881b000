package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"socialsound_server/services"
)

// LikeController exposes the like record store and the decide workflow.
type LikeController struct {
	LikeService     *services.LikeService
	WorkflowService *services.WorkflowService
}

// NewLikeController initializes the controller
func NewLikeController(likeService *services.LikeService, workflowService *services.WorkflowService) *LikeController {
	return &LikeController{LikeService: likeService, WorkflowService: workflowService}
}

// HandleCreateLike - a user likes another user's broadcast track
func (c *LikeController) HandleCreateLike(w http.ResponseWriter, r *http.Request) {
	var request services.CreateLikeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	log.Printf("💖 %s likes track %s from %s", request.FromUserID, request.TrackID, request.ToUserID)

	like, err := c.LikeService.CreateLike(ctx, request)
	if err != nil {
		log.Printf("❌ Failed to create like: %v", err)
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, like)
}

// HandleGetReceived - all likes addressed to a user, newest first
func (c *LikeController) HandleGetReceived(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	likes, err := c.LikeService.FetchReceived(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, likes)
}

// HandleGetGiven - all likes a user has sent, newest first
func (c *LikeController) HandleGetGiven(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	likes, err := c.LikeService.FetchGiven(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, likes)
}

// HandleDecide - the addressee accepts or rejects a pending like
func (c *LikeController) HandleDecide(w http.ResponseWriter, r *http.Request) {
	var request services.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if request.LikeID == "" || request.ToUserID == "" || request.ActingUserID == "" || request.Decision == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "missing required fields: likeId, toUserId, actingUserId, decision"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	outcome, err := c.WorkflowService.Decide(ctx, request)
	if err != nil {
		// A like can end up accepted with no conversation; tell the
		// caller which state it is in so the UI can offer repair.
		if outcome == services.OutcomeAcceptedWithoutConversation {
			respondJSON(w, http.StatusBadGateway, map[string]string{
				"outcome": outcome,
				"error":   "like accepted but conversation creation failed; retry via repair-conversation",
			})
			return
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"outcome": outcome})
}

// HandleRepairConversation - recovery path for accepted likes whose
// conversation write failed
func (c *LikeController) HandleRepairConversation(w http.ResponseWriter, r *http.Request) {
	var request struct {
		LikeID string `json:"likeId"`
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.LikeID == "" || request.UserID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "likeId and userId are required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	conversation, err := c.WorkflowService.RepairConversation(ctx, request.LikeID, request.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conversation)
}
