package models

// Like records one user's interest in another user's broadcast track.
// Each like is dual-written into the Likes table under both partitions:
// the addressee's RECEIVED partition (authoritative for status) and the
// liker's GIVEN partition (fast "likes I sent" queries).
type Like struct {
	PK string `dynamodbav:"PK" json:"-"` // USER#<uid>
	SK string `dynamodbav:"SK" json:"-"` // RECEIVED#<likeId> or GIVEN#<likeId>

	LikeID     string `dynamodbav:"likeId" json:"likeId"`
	FromUserID string `dynamodbav:"fromUserId" json:"fromUserId"`
	ToUserID   string `dynamodbav:"toUserId" json:"toUserId"`

	TrackID         string `dynamodbav:"trackId" json:"trackId"`
	TrackTitle      string `dynamodbav:"trackTitle" json:"trackTitle"`
	TrackArtist     string `dynamodbav:"trackArtist" json:"trackArtist"`
	TrackAlbum      string `dynamodbav:"trackAlbum,omitempty" json:"trackAlbum,omitempty"`
	TrackArtworkURL string `dynamodbav:"trackArtworkUrl,omitempty" json:"trackArtworkUrl,omitempty"`

	SessionID  string  `dynamodbav:"sessionId,omitempty" json:"sessionId,omitempty"`
	PlaceLabel string  `dynamodbav:"placeLabel,omitempty" json:"placeLabel,omitempty"`
	Latitude   float64 `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude  float64 `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`

	// Snapshot of the liker taken at creation time, never refreshed
	// after the like is written.
	FromUserDisplayName string `dynamodbav:"fromUserDisplayName,omitempty" json:"fromUserDisplayName,omitempty"`
	FromUserAvatarURL   string `dynamodbav:"fromUserAvatarUrl,omitempty" json:"fromUserAvatarUrl,omitempty"`

	// Optional free-text note, set once at creation. Seeds the first chat
	// message if the like is accepted.
	Message string `dynamodbav:"message,omitempty" json:"message,omitempty"`

	Status    string `dynamodbav:"status,omitempty" json:"status"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// EffectiveStatus maps an absent status to pending for legacy records.
func (l *Like) EffectiveStatus() string {
	if l.Status == "" {
		return LikeStatusPending
	}
	return l.Status
}

// IsDecided reports whether the like reached a terminal status.
func (l *Like) IsDecided() bool {
	s := l.EffectiveStatus()
	return s == LikeStatusAccepted || s == LikeStatusRejected
}

// IsMalformed reports whether a decoded record is missing required fields.
// Malformed records are skipped during bulk reads instead of failing the batch.
func (l *Like) IsMalformed() bool {
	return l.LikeID == "" || l.FromUserID == "" || l.ToUserID == "" ||
		l.TrackID == "" || l.TrackTitle == "" || l.TrackArtist == ""
}

// UserPK builds the partition key for a user's like partitions.
func UserPK(userID string) string { return "USER#" + userID }

// ReceivedSK builds the sort key of the addressee's copy.
func ReceivedSK(likeID string) string { return "RECEIVED#" + likeID }

// GivenSK builds the sort key of the liker's copy.
func GivenSK(likeID string) string { return "GIVEN#" + likeID }
