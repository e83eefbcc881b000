package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"socialsound_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// LikeService is the like record store: it persists likes dual-written
// under the addressee's RECEIVED partition and the liker's GIVEN partition,
// and owns status mutation.
type LikeService struct {
	Dynamo     DocumentStore
	Profiles   *UserProfileService
	Broadcasts *BroadcastService
}

// CreateLikeRequest carries everything needed to record a like on a
// broadcast track.
type CreateLikeRequest struct {
	FromUserID      string  `json:"fromUserId"`
	ToUserID        string  `json:"toUserId"`
	TrackID         string  `json:"trackId"`
	TrackTitle      string  `json:"trackTitle"`
	TrackArtist     string  `json:"trackArtist"`
	TrackAlbum      string  `json:"trackAlbum,omitempty"`
	TrackArtworkURL string  `json:"trackArtworkUrl,omitempty"`
	SessionID       string  `json:"sessionId,omitempty"`
	PlaceLabel      string  `json:"placeLabel,omitempty"`
	Latitude        float64 `json:"latitude,omitempty"`
	Longitude       float64 `json:"longitude,omitempty"`
	Message         string  `json:"message,omitempty"`
}

// CreateLike stores a new pending like. Repeated likes on the same track by
// the same user are allowed and produce separate records. The liker's
// displayName/avatar are snapshotted at this instant and never refreshed.
func (s *LikeService) CreateLike(ctx context.Context, req CreateLikeRequest) (*models.Like, error) {
	if req.FromUserID == "" || req.ToUserID == "" || req.TrackID == "" ||
		req.TrackTitle == "" || req.TrackArtist == "" {
		return nil, errors.New("missing required like fields")
	}
	if req.FromUserID == req.ToUserID {
		return nil, ErrSelfLike
	}

	like := models.Like{
		LikeID:          uuid.NewString(),
		FromUserID:      req.FromUserID,
		ToUserID:        req.ToUserID,
		TrackID:         req.TrackID,
		TrackTitle:      req.TrackTitle,
		TrackArtist:     req.TrackArtist,
		TrackAlbum:      req.TrackAlbum,
		TrackArtworkURL: req.TrackArtworkURL,
		SessionID:       req.SessionID,
		PlaceLabel:      req.PlaceLabel,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Message:         req.Message,
		Status:          models.LikeStatusPending,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	// Snapshot the liker's profile. A missing profile is not fatal; the
	// like simply carries no display name.
	if s.Profiles != nil {
		profile, err := s.Profiles.GetUserProfile(ctx, req.FromUserID)
		if err != nil {
			log.Printf("⚠️ Could not snapshot profile for %s: %v", req.FromUserID, err)
		} else {
			like.FromUserDisplayName = profile.DisplayName
			like.FromUserAvatarURL = profile.AvatarURL
		}
	}

	if err := s.writeBothCopies(ctx, &like); err != nil {
		return nil, remoteErr("CreateLike", like.LikeID, err)
	}
	log.Printf("💖 Like %s saved: %s -> %s (track %s)", like.LikeID, like.FromUserID, like.ToUserID, like.TrackID)

	// Bump the broadcast session's like counter. Documented choice: a
	// failed increment is logged and swallowed, the like itself stands.
	if req.SessionID != "" && s.Broadcasts != nil {
		if err := s.Broadcasts.IncrementLikeCount(ctx, req.ToUserID, req.SessionID); err != nil {
			log.Printf("⚠️ Failed to increment likeCount on session %s: %v", req.SessionID, err)
		}
	}

	return &like, nil
}

// SetStatus transitions a pending like to accepted or rejected. Only the
// addressee can do this: the record is looked up under the target user's
// RECEIVED partition, so anyone else simply finds nothing. Both copies are
// rewritten in one batch so the GIVEN copy's status cannot go stale.
func (s *LikeService) SetStatus(ctx context.Context, likeID, targetUserID, newStatus string) (*models.Like, error) {
	if newStatus != models.LikeStatusAccepted && newStatus != models.LikeStatusRejected {
		return nil, fmt.Errorf("unsupported like status: %s", newStatus)
	}

	like, err := s.GetReceivedLike(ctx, likeID, targetUserID)
	if err != nil {
		return nil, err
	}

	if like.ToUserID != targetUserID {
		return nil, ErrUnauthorized
	}
	if like.IsDecided() {
		return nil, ErrInvalidTransition
	}

	like.Status = newStatus
	if err := s.writeBothCopies(ctx, like); err != nil {
		return nil, remoteErr("SetStatus", likeID, err)
	}

	log.Printf("✅ Like %s is now %s", likeID, newStatus)
	return like, nil
}

// GetReceivedLike loads the authoritative RECEIVED copy of a like.
func (s *LikeService) GetReceivedLike(ctx context.Context, likeID, userID string) (*models.Like, error) {
	key := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: models.UserPK(userID)},
		"SK": &types.AttributeValueMemberS{Value: models.ReceivedSK(likeID)},
	}

	item, err := s.Dynamo.GetItem(ctx, models.LikesTable, key)
	if err != nil {
		return nil, remoteErr("GetReceivedLike", likeID, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	var like models.Like
	if err := attributevalue.UnmarshalMap(item, &like); err != nil {
		return nil, remoteErr("GetReceivedLike", likeID, err)
	}
	if like.IsMalformed() {
		log.Printf("⚠️ Like %s under %s is malformed", likeID, userID)
		return nil, ErrNotFound
	}
	return &like, nil
}

// FetchReceived returns all likes addressed to a user, newest first.
func (s *LikeService) FetchReceived(ctx context.Context, userID string) ([]models.Like, error) {
	return s.fetchPartition(ctx, userID, "RECEIVED#")
}

// FetchGiven returns all likes a user has sent, newest first.
func (s *LikeService) FetchGiven(ctx context.Context, userID string) ([]models.Like, error) {
	return s.fetchPartition(ctx, userID, "GIVEN#")
}

func (s *LikeService) fetchPartition(ctx context.Context, userID, skPrefix string) ([]models.Like, error) {
	keyCondition := "PK = :pk AND begins_with(SK, :prefix)"
	expressionValues := map[string]types.AttributeValue{
		":pk":     &types.AttributeValueMemberS{Value: models.UserPK(userID)},
		":prefix": &types.AttributeValueMemberS{Value: skPrefix},
	}

	// Limit 0 reads the whole partition, however many pages that takes.
	items, err := s.Dynamo.QueryItems(ctx, models.LikesTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, remoteErr("FetchLikes", userID, err)
	}

	// Malformed records are skipped, never abort the whole batch.
	likes := make([]models.Like, 0, len(items))
	for _, item := range items {
		var like models.Like
		if err := attributevalue.UnmarshalMap(item, &like); err != nil {
			log.Printf("⚠️ Skipping undecodable like record for %s: %v", userID, err)
			continue
		}
		if like.IsMalformed() {
			log.Printf("⚠️ Skipping malformed like record %s for %s", like.LikeID, userID)
			continue
		}
		likes = append(likes, like)
	}

	// The sort key is the like id, so order by createdAt in process.
	sort.SliceStable(likes, func(i, j int) bool {
		return likes[i].CreatedAt > likes[j].CreatedAt
	})

	log.Printf("✅ Found %d likes under %s%s", len(likes), models.UserPK(userID), skPrefix)
	return likes, nil
}

// writeBothCopies puts the RECEIVED and GIVEN copies in a single batch
// write so a partial failure cannot leave one partition without the other.
func (s *LikeService) writeBothCopies(ctx context.Context, like *models.Like) error {
	received := *like
	received.PK = models.UserPK(like.ToUserID)
	received.SK = models.ReceivedSK(like.LikeID)

	given := *like
	given.PK = models.UserPK(like.FromUserID)
	given.SK = models.GivenSK(like.LikeID)

	var writes []types.WriteRequest
	for _, record := range []models.Like{received, given} {
		item, err := attributevalue.MarshalMap(record)
		if err != nil {
			return fmt.Errorf("failed to marshal like copy: %w", err)
		}
		writes = append(writes, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	return s.Dynamo.BatchWriteItems(ctx, models.LikesTable, writes)
}
