package models

import (
	"time"
)

type User struct {
	ID             string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserName       string    `json:"username" gorm:"column:user_name;uniqueIndex"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	Password       string    `json:"-"`
	FullName       string    `json:"fullName" gorm:"column:full_name"`
	ProfilePicture string    `json:"avatarUrl" gorm:"column:profile_picture"`
	CreatedAt      time.Time `json:"createdAt"`
}

type RegisterInput struct {
	UserName string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthorSummary is the reduced user view embedded in posts and comments
type AuthorSummary struct {
	ID        string `json:"id"`
	UserName  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Summary() AuthorSummary {
	return AuthorSummary{
		ID:        u.ID,
		UserName:  u.UserName,
		AvatarURL: u.ProfilePicture,
	}
}

func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		FullName:  u.FullName,
		AvatarURL: u.ProfilePicture,
		CreatedAt: u.CreatedAt,
	}
}

func (User) TableName() string {
	return "users"
}
