package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"socialsound_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FollowService manages one-directional follow edges between users.
type FollowService struct {
	Dynamo DocumentStore
}

// Follow records follower → followed. Writing the same edge twice just
// overwrites it, so the call is idempotent.
func (s *FollowService) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return fmt.Errorf("cannot follow yourself")
	}

	edge := models.Follow{
		PK:         models.UserPK(followerID),
		SK:         models.FollowSK(followedID),
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.FollowsTable, edge); err != nil {
		return remoteErr("Follow", followerID, err)
	}
	log.Printf("➕ %s now follows %s", followerID, followedID)
	return nil
}

// Unfollow removes the edge. Removing a non-existent edge is a no-op.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followedID string) error {
	key := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: models.UserPK(followerID)},
		"SK": &types.AttributeValueMemberS{Value: models.FollowSK(followedID)},
	}
	if err := s.Dynamo.DeleteItem(ctx, models.FollowsTable, key); err != nil {
		return remoteErr("Unfollow", followerID, err)
	}
	log.Printf("➖ %s unfollowed %s", followerID, followedID)
	return nil
}

// GetFollowing lists the users someone follows (prefix query on their
// partition).
func (s *FollowService) GetFollowing(ctx context.Context, followerID string) ([]models.Follow, error) {
	keyCondition := "PK = :pk AND begins_with(SK, :prefix)"
	expressionValues := map[string]types.AttributeValue{
		":pk":     &types.AttributeValueMemberS{Value: models.UserPK(followerID)},
		":prefix": &types.AttributeValueMemberS{Value: "FOLLOWS#"},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.FollowsTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, remoteErr("GetFollowing", followerID, err)
	}
	return unmarshalFollows(items)
}

// GetFollowers lists the users following someone, via the followedId GSI.
func (s *FollowService) GetFollowers(ctx context.Context, followedID string) ([]models.Follow, error) {
	keyCondition := "followedId = :followed"
	expressionValues := map[string]types.AttributeValue{
		":followed": &types.AttributeValueMemberS{Value: followedID},
	}

	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.FollowsTable, models.FollowedIDIndex, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, remoteErr("GetFollowers", followedID, err)
	}
	return unmarshalFollows(items)
}

func unmarshalFollows(items []map[string]types.AttributeValue) ([]models.Follow, error) {
	follows := make([]models.Follow, 0, len(items))
	for _, item := range items {
		var edge models.Follow
		if err := attributevalue.UnmarshalMap(item, &edge); err != nil {
			log.Printf("⚠️ Skipping undecodable follow edge: %v", err)
			continue
		}
		follows = append(follows, edge)
	}
	return follows, nil
}
