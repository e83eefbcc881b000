package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatusDefaultsToPending(t *testing.T) {
	like := Like{}
	assert.Equal(t, LikeStatusPending, like.EffectiveStatus())
	assert.False(t, like.IsDecided())

	like.Status = LikeStatusAccepted
	assert.Equal(t, LikeStatusAccepted, like.EffectiveStatus())
	assert.True(t, like.IsDecided())

	like.Status = LikeStatusRejected
	assert.True(t, like.IsDecided())
}

func TestIsMalformed(t *testing.T) {
	complete := Like{
		LikeID:      "l1",
		FromUserID:  "u2",
		ToUserID:    "u1",
		TrackID:     "t1",
		TrackTitle:  "Song",
		TrackArtist: "Artist",
	}
	assert.False(t, complete.IsMalformed())

	for _, mutate := range []func(*Like){
		func(l *Like) { l.LikeID = "" },
		func(l *Like) { l.FromUserID = "" },
		func(l *Like) { l.ToUserID = "" },
		func(l *Like) { l.TrackID = "" },
		func(l *Like) { l.TrackTitle = "" },
		func(l *Like) { l.TrackArtist = "" },
	} {
		broken := complete
		mutate(&broken)
		assert.True(t, broken.IsMalformed())
	}
}
