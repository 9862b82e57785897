package model

import (
	"time"

	"gorm.io/datatypes"
)

/*

Post is a community recipe published by a user

Id: primary key, uuid
UserID:
User: owning user, "belongs-to" relation
Title: recipe title in plain text
Category: recipe category, e.g. "Dessert"
Area: cuisine area, e.g. "Italian"
Ingredients: JSON array of {name, measure} objects
Instructions: cooking steps in plain text
Content: optional free-form text from the author
ImageUrl: public path of the uploaded image, empty when no image

Comments: comments on this post, "has-many" relation
Likes: like rows for this post, "has-many" relation

*/

type Post struct {
	Id           string         `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time      `json:"createdAt"`
	UserID       string         `json:"userId"`
	User         *User          `json:"user,omitempty"`
	Title        string         `json:"title"`
	Category     string         `json:"category"`
	Area         string         `json:"area"`
	Ingredients  datatypes.JSON `json:"ingredients"`
	Instructions string         `json:"instructions"`
	Content      string         `json:"content"`
	ImageUrl     string         `json:"imageUrl"`
	Comments     []*PostComment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
	Likes        []*PostLike    `json:"likes,omitempty" gorm:"foreignKey:PostID"`
}

// PostIngredient is one element of a post's Ingredients JSON column.
type PostIngredient struct {
	Name    string `json:"name"`
	Measure string `json:"measure"`
}
