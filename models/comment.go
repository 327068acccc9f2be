package models

import (
	"time"
)

// Comment is append-only: there is no update or delete endpoint
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"column:post_id;type:uuid;index"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:uuid"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentCreate struct {
	Text string `json:"text" binding:"required"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Author    AuthorSummary `json:"author"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}
