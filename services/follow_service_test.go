package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowAndUnfollow(t *testing.T) {
	store := newMockStore()
	svc := &FollowService{Dynamo: store}

	require.NoError(t, svc.Follow(context.Background(), "u1", "u2"))
	require.NoError(t, svc.Follow(context.Background(), "u1", "u3"))
	// Re-following is an overwrite, not a duplicate edge
	require.NoError(t, svc.Follow(context.Background(), "u1", "u2"))

	following, err := svc.GetFollowing(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, following, 2)

	followers, err := svc.GetFollowers(context.Background(), "u2")
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "u1", followers[0].FollowerID)

	require.NoError(t, svc.Unfollow(context.Background(), "u1", "u2"))
	following, err = svc.GetFollowing(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, following, 1)
}

func TestFollowRejectsSelf(t *testing.T) {
	svc := &FollowService{Dynamo: newMockStore()}
	assert.Error(t, svc.Follow(context.Background(), "u1", "u1"))
}
