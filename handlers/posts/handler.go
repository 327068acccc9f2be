package posts

import (
	"errors"
	"net/http"
	"strings"

	"instashare-backend/db"
	"instashare-backend/models"
	"instashare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultFeedPageSize = 10

// @Summary Create a new post
// @Description Create a new post with an image URL and an optional caption
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.PostCreate true "Post content"
// @Security BearerAuth
// @Success 201 {object} models.PostResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /posts [post]
func CreatePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found in token")
		return
	}

	var input models.PostCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Image URL is required")
		return
	}
	if len(imageURL) > models.MaxImageURLLength {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Image URL must not exceed 500 characters")
		return
	}

	var author models.User
	if err := db.DB.First(&author, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found")
		} else {
			utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error retrieving user: "+err.Error())
		}
		return
	}

	post := models.Post{
		UserID:   author.ID,
		ImageURL: imageURL,
		Caption:  input.Caption,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		utils.LogErrorWithUser(author.ID, err, "Error creating post")
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error creating post: "+err.Error())
		return
	}

	utils.LogSuccessWithUser(author.ID, "Post created")

	// a brand new post has no engagement yet
	c.JSON(http.StatusCreated, models.PostResponse{
		ID:             post.ID,
		ImageURL:       post.ImageURL,
		Caption:        post.Caption,
		Author:         author.Summary(),
		LikesCount:     0,
		CommentsCount:  0,
		ViewerHasLiked: false,
		CreatedAt:      post.CreatedAt,
	})
}

// @Summary Get the feed
// @Description Retrieve posts newest first, enriched with engagement counts and the viewer's like state
// @Tags posts
// @Produce json
// @Param page query int false "Page index (0-based)"
// @Param size query int false "Page size"
// @Security BearerAuth
// @Success 200 {object} models.PageResponse[models.PostResponse]
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /posts [get]
func GetFeed(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found in token")
		return
	}

	page, size := utils.ParsePagination(c, defaultFeedPageSize)

	var response models.PageResponse[models.PostResponse]

	// one transaction for the whole page: the counts and the viewer's like
	// state observe the same snapshot as the page itself
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&models.Post{}).Count(&total).Error; err != nil {
			return err
		}

		var posts []models.Post
		if err := tx.Order("created_at DESC, id DESC").
			Offset(page * size).
			Limit(size).
			Find(&posts).Error; err != nil {
			return err
		}

		content := make([]models.PostResponse, 0, len(posts))
		for _, post := range posts {
			enriched, err := buildPostResponse(tx, post, userID.(string))
			if err != nil {
				return err
			}
			content = append(content, enriched)
		}

		response = models.PageResponse[models.PostResponse]{
			Content:    content,
			Page:       page,
			TotalPages: utils.TotalPages(total, size),
		}
		return nil
	})
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error retrieving feed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get a post by ID
// @Description Retrieve a single post enriched with engagement counts and the viewer's like state
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} models.PostResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /posts/{id} [get]
func GetPostByID(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found in token")
		return
	}

	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid post ID")
		return
	}

	var response models.PostResponse

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			return err
		}

		enriched, err := buildPostResponse(tx, post, userID.(string))
		if err != nil {
			return err
		}
		response = enriched
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, utils.CodeNotFound, "Post not found")
		} else {
			utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error retrieving post: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Delete a post
// @Description Delete a post with its comments and likes, only allowed to its author
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found in token")
		return
	}

	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid post ID")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, utils.CodeNotFound, "Post not found")
		} else {
			utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error retrieving post: "+err.Error())
		}
		return
	}

	if post.UserID != userID.(string) {
		utils.SendError(c, http.StatusForbidden, utils.CodeForbidden, "You can only delete your own posts")
		return
	}

	// likes, comments and the post go away in a single transaction: either
	// all of them disappear or none do
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error deleting post")
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error deleting post: "+err.Error())
		return
	}

	utils.LogSuccessWithUser(userID, "Post deleted")
	c.Status(http.StatusNoContent)
}

// buildPostResponse recomputes the engagement counts and the viewer's like
// state from the source tables. Callers pass the transaction they are reading
// the post from so all derived values share one snapshot.
func buildPostResponse(tx *gorm.DB, post models.Post, viewerID string) (models.PostResponse, error) {
	var author models.User
	tx.Select("id, user_name, profile_picture").Where("id = ?", post.UserID).First(&author)

	var likesCount int64
	if err := tx.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likesCount).Error; err != nil {
		return models.PostResponse{}, err
	}

	var commentsCount int64
	if err := tx.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentsCount).Error; err != nil {
		return models.PostResponse{}, err
	}

	var viewerLikes int64
	if err := tx.Model(&models.Like{}).Where("user_id = ? AND post_id = ?", viewerID, post.ID).Count(&viewerLikes).Error; err != nil {
		return models.PostResponse{}, err
	}

	return models.PostResponse{
		ID:             post.ID,
		ImageURL:       post.ImageURL,
		Caption:        post.Caption,
		Author:         author.Summary(),
		LikesCount:     likesCount,
		CommentsCount:  commentsCount,
		ViewerHasLiked: viewerLikes > 0,
		CreatedAt:      post.CreatedAt,
	}, nil
}
