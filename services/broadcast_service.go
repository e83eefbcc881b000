package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"socialsound_server/models"
	"socialsound_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// BroadcastService manages "now playing" presence: one session document
// per user, upserted while the user is broadcasting and deleted when they
// stop.
type BroadcastService struct {
	Dynamo DocumentStore
}

// UpsertBroadcast starts or refreshes a user's broadcast. Switching tracks
// starts a fresh session (new sessionId, likeCount reset); refreshing the
// same track keeps the session and its counter.
func (s *BroadcastService) UpsertBroadcast(ctx context.Context, session models.BroadcastSession) (*models.BroadcastSession, error) {
	if session.UserID == "" || session.TrackID == "" || session.TrackTitle == "" || session.TrackArtist == "" {
		return nil, fmt.Errorf("missing required broadcast fields")
	}

	now := time.Now().UTC().Format(time.RFC3339)

	existing, err := s.GetBroadcast(ctx, session.UserID)
	if err != nil && err != ErrNotFound {
		return nil, err
	}

	if existing != nil && existing.TrackID == session.TrackID {
		session.SessionID = existing.SessionID
		session.StartedAt = existing.StartedAt
		session.LikeCount = existing.LikeCount
	} else {
		session.SessionID = uuid.NewString()
		session.StartedAt = now
		session.LikeCount = 0
	}
	session.UpdatedAt = now

	if err := s.Dynamo.PutItem(ctx, models.BroadcastsTable, session); err != nil {
		return nil, remoteErr("UpsertBroadcast", session.UserID, err)
	}

	log.Printf("📡 Broadcast upserted for %s: %s - %s", session.UserID, session.TrackArtist, session.TrackTitle)
	return &session, nil
}

// StopBroadcast removes the user's presence document.
func (s *BroadcastService) StopBroadcast(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	if err := s.Dynamo.DeleteItem(ctx, models.BroadcastsTable, key); err != nil {
		return remoteErr("StopBroadcast", userID, err)
	}
	log.Printf("📴 Broadcast stopped for %s", userID)
	return nil
}

// GetBroadcast loads one user's active broadcast, ErrNotFound when absent.
func (s *BroadcastService) GetBroadcast(ctx context.Context, userID string) (*models.BroadcastSession, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := s.Dynamo.GetItem(ctx, models.BroadcastsTable, key)
	if err != nil {
		return nil, remoteErr("GetBroadcast", userID, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	var session models.BroadcastSession
	if err := attributevalue.UnmarshalMap(item, &session); err != nil {
		return nil, remoteErr("GetBroadcast", userID, err)
	}
	return &session, nil
}

// ListNearby returns broadcasts within radiusKm of the given point,
// closest first, excluding the caller's own session.
func (s *BroadcastService) ListNearby(ctx context.Context, userID string, lat, lng, radiusKm float64) ([]models.NearbyBroadcast, error) {
	var sessions []models.BroadcastSession

	excludeFields := map[string]string{"userId": userID}
	if err := s.Dynamo.ScanWithFilter(ctx, models.BroadcastsTable, nil, excludeFields, &sessions); err != nil {
		return nil, remoteErr("ListNearby", userID, err)
	}

	var nearby []models.NearbyBroadcast
	for _, session := range sessions {
		if session.Latitude == 0 && session.Longitude == 0 {
			continue
		}
		distance := utils.DistanceKm(lat, lng, session.Latitude, session.Longitude)
		if distance > radiusKm {
			continue
		}
		nearby = append(nearby, models.NearbyBroadcast{
			BroadcastSession: session,
			DistanceKm:       distance,
		})
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	log.Printf("✅ Found %d broadcasts within %.1f km for %s", len(nearby), radiusKm, userID)
	return nearby, nil
}

// IncrementLikeCount bumps the like counter on the user's current session.
// A stale sessionId (the broadcaster moved on to another track) is an
// error the caller may choose to swallow.
func (s *BroadcastService) IncrementLikeCount(ctx context.Context, userID, sessionID string) error {
	session, err := s.GetBroadcast(ctx, userID)
	if err != nil {
		return err
	}
	if session.SessionID != sessionID {
		return fmt.Errorf("session %s is no longer active for %s", sessionID, userID)
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	updateExpression := "ADD likeCount :one"
	expressionValues := map[string]types.AttributeValue{
		":one": &types.AttributeValueMemberN{Value: "1"},
	}

	if _, err := s.Dynamo.UpdateItem(ctx, models.BroadcastsTable, updateExpression, key, expressionValues, nil); err != nil {
		return remoteErr("IncrementLikeCount", sessionID, err)
	}
	return nil
}
