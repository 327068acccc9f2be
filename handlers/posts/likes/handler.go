package likes

import (
	"errors"
	"net/http"

	"instashare-backend/db"
	"instashare-backend/models"
	"instashare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// @Summary Like a post
// @Description Add the caller's like on a post. Liking twice is a conflict, not a no-op.
// @Tags likes
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} models.LikeResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /posts/{id}/like [post]
func LikePost(c *gin.Context) {
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

	like := models.Like{
		UserID: userID.(string),
		PostID: post.ID,
	}

	// no existence pre-check: the composite primary key rejects a duplicate
	// insert at the database, so concurrent double likes cannot both succeed
	if err := db.DB.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SendError(c, http.StatusConflict, utils.CodeConflict, "Post already liked")
		} else {
			utils.LogErrorWithUser(userID, err, "Error adding like")
			utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error adding like: "+err.Error())
		}
		return
	}

	likesCount, err := countLikes(post.ID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error counting likes: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, models.LikeResponse{
		PostID:     post.ID,
		LikesCount: likesCount,
	})
}

// @Summary Unlike a post
// @Description Remove the caller's like from a post. Removing an absent like is an error.
// @Tags likes
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} models.LikeResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /posts/{id}/like [delete]
func UnlikePost(c *gin.Context) {
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

	result := db.DB.Where("user_id = ? AND post_id = ?", userID, post.ID).Delete(&models.Like{})
	if result.Error != nil {
		utils.LogErrorWithUser(userID, result.Error, "Error removing like")
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error removing like: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.SendError(c, http.StatusNotFound, utils.CodeNotFound, "Like not found")
		return
	}

	likesCount, err := countLikes(post.ID)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error counting likes: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, models.LikeResponse{
		PostID:     post.ID,
		LikesCount: likesCount,
	})
}

func countLikes(postID string) (int64, error) {
	var count int64
	err := db.DB.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
