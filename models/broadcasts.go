package models

// BroadcastSession is a user's public "now playing" announcement plus
// location. One session per user (the table is keyed by userId); starting
// a new broadcast upserts the same document and resets likeCount only when
// the track changes.
type BroadcastSession struct {
	UserID    string `dynamodbav:"userId" json:"userId"`
	SessionID string `dynamodbav:"sessionId" json:"sessionId"`

	TrackID         string `dynamodbav:"trackId" json:"trackId"`
	TrackTitle      string `dynamodbav:"trackTitle" json:"trackTitle"`
	TrackArtist     string `dynamodbav:"trackArtist" json:"trackArtist"`
	TrackAlbum      string `dynamodbav:"trackAlbum,omitempty" json:"trackAlbum,omitempty"`
	TrackArtworkURL string `dynamodbav:"trackArtworkUrl,omitempty" json:"trackArtworkUrl,omitempty"`

	PlaceLabel string  `dynamodbav:"placeLabel,omitempty" json:"placeLabel,omitempty"`
	Latitude   float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude  float64 `dynamodbav:"longitude" json:"longitude"`

	LikeCount int `dynamodbav:"likeCount" json:"likeCount"`

	StartedAt string `dynamodbav:"startedAt" json:"startedAt"`
	UpdatedAt string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// NearbyBroadcast is a broadcast enriched with the distance to the caller.
type NearbyBroadcast struct {
	BroadcastSession
	DistanceKm float64 `json:"distanceKm"`
}
