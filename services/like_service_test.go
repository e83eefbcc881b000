package services

import (
	"context"
	"testing"

	"socialsound_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLikeFixture() (*mockStore, *LikeService) {
	store := newMockStore()
	profiles := &UserProfileService{Dynamo: store}
	broadcasts := &BroadcastService{Dynamo: store}
	return store, &LikeService{Dynamo: store, Profiles: profiles, Broadcasts: broadcasts}
}

func baseRequest() CreateLikeRequest {
	return CreateLikeRequest{
		FromUserID:  "u2",
		ToUserID:    "u1",
		TrackID:     "track-1",
		TrackTitle:  "Song Title",
		TrackArtist: "Artist",
	}
}

func TestCreateLikeWritesBothCopies(t *testing.T) {
	_, svc := newLikeFixture()

	_, err := svc.Profiles.AddUserProfile(context.Background(), models.UserProfile{
		UserID:      "u2",
		DisplayName: "Zoe",
		AvatarURL:   "https://cdn.example/u2.jpg",
	})
	require.NoError(t, err)

	req := baseRequest()
	req.Message = "nice track!"
	like, err := svc.CreateLike(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, like.LikeID)
	assert.Equal(t, models.LikeStatusPending, like.Status)
	assert.Equal(t, "Zoe", like.FromUserDisplayName)
	assert.Equal(t, "https://cdn.example/u2.jpg", like.FromUserAvatarURL)

	received, err := svc.FetchReceived(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, like.LikeID, received[0].LikeID)

	given, err := svc.FetchGiven(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, given, 1)
	assert.Equal(t, like.LikeID, given[0].LikeID)
}

func TestCreateLikeRejectsSelfLike(t *testing.T) {
	_, svc := newLikeFixture()

	req := baseRequest()
	req.ToUserID = req.FromUserID
	_, err := svc.CreateLike(context.Background(), req)
	assert.ErrorIs(t, err, ErrSelfLike)
}

func TestCreateLikeAllowsRepeatedLikesOnSameTrack(t *testing.T) {
	_, svc := newLikeFixture()

	first, err := svc.CreateLike(context.Background(), baseRequest())
	require.NoError(t, err)
	second, err := svc.CreateLike(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.LikeID, second.LikeID)

	received, err := svc.FetchReceived(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, received, 2)
}

func TestCreateLikeMissingProfileIsNotFatal(t *testing.T) {
	_, svc := newLikeFixture()

	like, err := svc.CreateLike(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Empty(t, like.FromUserDisplayName)
}

func TestCreateLikeIncrementsSessionCounter(t *testing.T) {
	_, svc := newLikeFixture()

	session, err := svc.Broadcasts.UpsertBroadcast(context.Background(), models.BroadcastSession{
		UserID:      "u1",
		TrackID:     "track-1",
		TrackTitle:  "Song Title",
		TrackArtist: "Artist",
		Latitude:    48.85,
		Longitude:   2.35,
	})
	require.NoError(t, err)

	req := baseRequest()
	req.SessionID = session.SessionID
	_, err = svc.CreateLike(context.Background(), req)
	require.NoError(t, err)

	updated, err := svc.Broadcasts.GetBroadcast(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, updated.LikeCount)
}

func TestCreateLikeSurvivesCounterFailure(t *testing.T) {
	_, svc := newLikeFixture()

	// No broadcast session exists, so the counter bump fails; the like
	// must still be created.
	req := baseRequest()
	req.SessionID = "stale-session"
	like, err := svc.CreateLike(context.Background(), req)
	require.NoError(t, err)

	received, err := svc.FetchReceived(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, like.LikeID, received[0].LikeID)
}

func TestSetStatusUpdatesBothCopies(t *testing.T) {
	_, svc := newLikeFixture()

	like, err := svc.CreateLike(context.Background(), baseRequest())
	require.NoError(t, err)

	updated, err := svc.SetStatus(context.Background(), like.LikeID, "u1", models.LikeStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusAccepted, updated.Status)

	given, err := svc.FetchGiven(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, given, 1)
	assert.Equal(t, models.LikeStatusAccepted, given[0].Status)
}

func TestSetStatusUnknownLike(t *testing.T) {
	_, svc := newLikeFixture()

	_, err := svc.SetStatus(context.Background(), "missing", "u1", models.LikeStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetStatusRejectsSecondTransition(t *testing.T) {
	_, svc := newLikeFixture()

	like, err := svc.CreateLike(context.Background(), baseRequest())
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), like.LikeID, "u1", models.LikeStatusRejected)
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), like.LikeID, "u1", models.LikeStatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	_, svc := newLikeFixture()

	like, err := svc.CreateLike(context.Background(), baseRequest())
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), like.LikeID, "u1", "maybe")
	assert.Error(t, err)
}

func TestFetchReceivedReturnsEveryLike(t *testing.T) {
	_, svc := newLikeFixture()

	// A heavily liked user gets the full list back, not a capped page.
	for i := 0; i < 205; i++ {
		_, err := svc.CreateLike(context.Background(), baseRequest())
		require.NoError(t, err)
	}

	received, err := svc.FetchReceived(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, received, 205)
}

func TestFetchReceivedSkipsMalformedAndSortsNewestFirst(t *testing.T) {
	store, svc := newLikeFixture()

	older := models.Like{
		PK: models.UserPK("u1"), SK: models.ReceivedSK("a"),
		LikeID: "a", FromUserID: "u2", ToUserID: "u1",
		TrackID: "t1", TrackTitle: "First", TrackArtist: "Artist",
		CreatedAt: "2024-01-01T10:00:00Z",
	}
	newer := older
	newer.SK = models.ReceivedSK("b")
	newer.LikeID = "b"
	newer.TrackTitle = "Second"
	newer.CreatedAt = "2024-06-01T10:00:00Z"

	for _, like := range []models.Like{older, newer} {
		item, err := attributevalue.MarshalMap(like)
		require.NoError(t, err)
		store.putRaw(models.LikesTable, item)
	}

	// A record with no trackTitle is malformed and must be skipped.
	store.putRaw(models.LikesTable, map[string]types.AttributeValue{
		"PK":         &types.AttributeValueMemberS{Value: models.UserPK("u1")},
		"SK":         &types.AttributeValueMemberS{Value: models.ReceivedSK("broken")},
		"likeId":     &types.AttributeValueMemberS{Value: "broken"},
		"fromUserId": &types.AttributeValueMemberS{Value: "u9"},
		"toUserId":   &types.AttributeValueMemberS{Value: "u1"},
		"trackId":    &types.AttributeValueMemberS{Value: "t9"},
		"createdAt":  &types.AttributeValueMemberS{Value: "2024-07-01T10:00:00Z"},
	})

	received, err := svc.FetchReceived(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, received, 2)
	assert.Equal(t, "b", received[0].LikeID)
	assert.Equal(t, "a", received[1].LikeID)
}
