package model

import "time"

// Profile is the user-editable public face of a User. It is created together
// with the user at signup, or lazily on the first profile write. An empty
// display name is allowed.
type Profile struct {
	UserID      string    `json:"userId" gorm:"primaryKey"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	DisplayName string    `json:"displayName"`
	Bio         string    `json:"bio"`
	AvatarUrl   string    `json:"avatarUrl"`
}
