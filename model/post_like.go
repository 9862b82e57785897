package model

import "time"

/*

PostLike is a relation of user liking a post

UserID: user id
PostID: post id
CreatedAt: time when relation is created

The composite primary key guarantees at most one like per (user, post) pair.
Likes are toggled, so rows are hard-deleted rather than soft-deleted.

*/

type PostLike struct {
	UserID    string    `json:"userId" gorm:"primaryKey"`
	PostID    string    `json:"postId" gorm:"primaryKey"`
	CreatedAt time.Time `json:"-"`
}
