package models

import (
	"time"
)

// Like is keyed by the composite (user_id, post_id) pair. The composite
// primary key doubles as the uniqueness constraint: a duplicate insert is
// rejected by the database, not pre-checked by the handlers.
type Like struct {
	UserID    string    `json:"userId" gorm:"column:user_id;primaryKey;type:uuid"`
	PostID    string    `json:"postId" gorm:"column:post_id;primaryKey;type:uuid"`
	CreatedAt time.Time `json:"createdAt"`
}

type LikeResponse struct {
	PostID     string `json:"postId"`
	LikesCount int64  `json:"likesCount"`
}

func (Like) TableName() string {
	return "likes"
}
