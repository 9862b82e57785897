package model

import "time"

// PostComment is a comment left by a user on a community post.
type PostComment struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	User      *User     `json:"user,omitempty"`
	Body      string    `json:"body"`
}
