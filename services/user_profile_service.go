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

type UserProfileService struct {
	Dynamo DocumentStore
}

// AddUserProfile adds a new user profile to DynamoDB
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" || profile.DisplayName == "" {
		return nil, fmt.Errorf("missing required profile fields")
	}
	profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, remoteErr("AddUserProfile", profile.UserID, err)
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if err != nil {
		return nil, remoteErr("GetUserProfile", userID, err)
	}
	if item == nil {
		return nil, ErrNotFound
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, remoteErr("GetUserProfile", userID, err)
	}
	return &profile, nil
}

// UpdateUserProfile applies a partial update of string fields and returns
// the updated profile.
func (ups *UserProfileService) UpdateUserProfile(ctx context.Context, userID string, updates map[string]string) (*models.UserProfile, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("no updates provided")
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for k, v := range updates {
		placeholder := ":" + k
		attributeName := "#" + k
		updateExpression += " " + attributeName + " = " + placeholder + ","
		expressionAttributeValues[placeholder] = &types.AttributeValueMemberS{Value: v}
		expressionAttributeNames[attributeName] = k
	}

	updateExpression += " #updatedAt = :updatedAt"
	expressionAttributeValues[":updatedAt"] = &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)}
	expressionAttributeNames["#updatedAt"] = "updatedAt"

	updatedItem, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, remoteErr("UpdateUserProfile", userID, err)
	}

	var updatedProfile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedProfile); err != nil {
		return nil, remoteErr("UpdateUserProfile", userID, err)
	}

	log.Printf("✅ Profile updated for %s", userID)
	return &updatedProfile, nil
}

// DeleteUserProfile removes a user profile from DynamoDB
func (ups *UserProfileService) DeleteUserProfile(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	if err := ups.Dynamo.DeleteItem(ctx, models.UserProfilesTable, key); err != nil {
		return remoteErr("DeleteUserProfile", userID, err)
	}
	return nil
}
