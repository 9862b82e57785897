package model

import "time"

/*

User is the identity anchor of the application.

Id: primary key, uuid assigned at signup
Email: unique login identifier, stored case-sensitive
PasswordHash: bcrypt hash, never serialized to clients
Profile: 1:1 public-facing profile, "has-one" relation

*/

type User struct {
	Id           string    `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"createdAt"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Profile      *Profile  `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}
