package comment

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

const defaultCommentsPageSize = 20

// @Summary Add a comment to a post
// @Description Append an immutable comment to an existing post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param comment body models.CommentCreate true "Comment content"
// @Security BearerAuth
// @Success 201 {object} models.CommentResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
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

	var input models.CommentCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(input.Text) == "" {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Comment text cannot be blank")
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

	var author models.User
	if err := db.DB.First(&author, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found")
		} else {
			utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error retrieving user: "+err.Error())
		}
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: author.ID,
		Text:   input.Text,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		utils.LogErrorWithUser(author.ID, err, "Error creating comment")
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error creating comment: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, models.CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		Author:    author.Summary(),
		CreatedAt: comment.CreatedAt,
	})
}

// @Summary List comments of a post
// @Description Retrieve the comments of a post newest first, paginated
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Param page query int false "Page index (0-based)"
// @Param size query int false "Page size"
// @Security BearerAuth
// @Success 200 {object} models.PageResponse[models.CommentResponse]
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /posts/{id}/comments [get]
func GetCommentsByPostID(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid post ID")
		return
	}

	page, size := utils.ParsePagination(c, defaultCommentsPageSize)

	var response models.PageResponse[models.CommentResponse]

	// count and page come from the same transaction so the total cannot
	// drift from the page content
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&total).Error; err != nil {
			return err
		}

		var comments []models.Comment
		if err := tx.Where("post_id = ?", post.ID).
			Order("created_at DESC, id DESC").
			Offset(page * size).
			Limit(size).
			Find(&comments).Error; err != nil {
			return err
		}

		content := make([]models.CommentResponse, 0, len(comments))
		for _, comment := range comments {
			var author models.User
			tx.Select("id, user_name, profile_picture").Where("id = ?", comment.UserID).First(&author)

			content = append(content, models.CommentResponse{
				ID:        comment.ID,
				Text:      comment.Text,
				Author:    author.Summary(),
				CreatedAt: comment.CreatedAt,
			})
		}

		response = models.PageResponse[models.CommentResponse]{
			Content:    content,
			Page:       page,
			TotalPages: utils.TotalPages(total, size),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, utils.CodeNotFound, "Post not found")
		} else {
			utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error retrieving comments: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, response)
}
