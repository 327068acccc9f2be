package models

import (
	"time"
)

// MaxImageURLLength bounds the image URL accepted at post creation
const MaxImageURLLength = 500

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:uuid;index"`
	ImageURL  string    `json:"imageUrl" gorm:"column:image_url;size:500"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostCreate struct {
	ImageURL string `json:"imageUrl" binding:"required"`
	Caption  string `json:"caption"`
}

// PostResponse is a post enriched with its engagement counts and the
// viewer's own like state, all recomputed at render time
type PostResponse struct {
	ID             string        `json:"id"`
	ImageURL       string        `json:"imageUrl"`
	Caption        string        `json:"caption"`
	Author         AuthorSummary `json:"author"`
	LikesCount     int64         `json:"likesCount"`
	CommentsCount  int64         `json:"commentsCount"`
	ViewerHasLiked bool          `json:"viewerHasLiked"`
	CreatedAt      time.Time     `json:"createdAt"`
}

func (Post) TableName() string {
	return "posts"
}
