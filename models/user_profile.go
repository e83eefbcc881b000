package models

// UserProfile is the per-user profile document. DisplayName and AvatarURL
// are the fields snapshotted onto likes at creation time.
type UserProfile struct {
	UserID      string  `dynamodbav:"userId" json:"userId"`
	DisplayName string  `dynamodbav:"displayName" json:"displayName"`
	AvatarURL   string  `dynamodbav:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Bio         string  `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	SpotifyID   string  `dynamodbav:"spotifyId,omitempty" json:"spotifyId,omitempty"`
	Latitude    float64 `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   float64 `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`
	CreatedAt   string  `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string  `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
