package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"socialsound_server/models"
	"socialsound_server/services"

	"github.com/gorilla/mux"
)

// BroadcastController exposes "now playing" presence.
type BroadcastController struct {
	BroadcastService *services.BroadcastService
}

// NewBroadcastController initializes the controller
func NewBroadcastController(service *services.BroadcastService) *BroadcastController {
	return &BroadcastController{BroadcastService: service}
}

// HandleUpsertBroadcast - start or refresh a user's broadcast
func (c *BroadcastController) HandleUpsertBroadcast(w http.ResponseWriter, r *http.Request) {
	var session models.BroadcastSession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	updated, err := c.BroadcastService.UpsertBroadcast(ctx, session)
	if err != nil {
		log.Printf("❌ Failed to upsert broadcast: %v", err)
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// HandleStopBroadcast - remove a user's presence
func (c *BroadcastController) HandleStopBroadcast(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := c.BroadcastService.StopBroadcast(ctx, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// HandleGetBroadcast - fetch one user's active broadcast
func (c *BroadcastController) HandleGetBroadcast(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	ctx, cancel := requestContext(r)
	defer cancel()

	session, err := c.BroadcastService.GetBroadcast(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// HandleNearbyBroadcasts - broadcasts within a radius of the caller
func (c *BroadcastController) HandleNearbyBroadcasts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if userID == "" || latErr != nil || lngErr != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "userId, lat and lng are required"})
		return
	}

	radiusKm, err := strconv.ParseFloat(r.URL.Query().Get("radiusKm"), 64)
	if err != nil || radiusKm <= 0 {
		radiusKm = 10
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	nearby, err := c.BroadcastService.ListNearby(ctx, userID, lat, lng, radiusKm)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nearby)
}
