package users

import (
	"errors"
	"net/http"

	"instashare-backend/db"
	"instashare-backend/models"
	"instashare-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Get the current user
// @Description Retrieve the profile of the authenticated user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /users/me [get]
func GetMe(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found in token")
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found")
		} else {
			utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error retrieving user: "+err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}

// @Summary Update the avatar
// @Description Upload a new profile picture for the authenticated user
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /users/me/avatar [put]
func UpdateAvatar(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found in token")
		return
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "User not found")
		} else {
			utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error retrieving user: "+err.Error())
		}
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil || file == nil {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Avatar file is required")
		return
	}

	avatarURL, err := utils.UploadAvatar(file, user.ID)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error uploading avatar")
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error uploading avatar: "+err.Error())
		return
	}

	user.ProfilePicture = avatarURL
	if err := db.DB.Save(&user).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error updating user: "+err.Error())
		return
	}

	utils.LogSuccessWithUser(user.ID, "Avatar updated")
	c.JSON(http.StatusOK, user.ToResponse())
}
