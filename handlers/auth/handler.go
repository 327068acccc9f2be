package auth

import (
	"errors"
	"net/http"

	"instashare-backend/db"
	"instashare-backend/models"
	"instashare-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetimeHours = 72

type authResponse struct {
	AccessToken string               `json:"accessToken"`
	User        models.AuthorSummary `json:"user"`
}

// @Summary Register a new user
// @Description Create a new account with a unique email and username
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.RegisterInput true "User information"
// @Success 201 {object} models.UserResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var input models.RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if !utils.ValidateEmail(input.Email) {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid email format")
		return
	}

	// Vérifier que l'email et le nom d'utilisateur sont libres
	var count int64
	if err := db.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error checking the email existence")
		return
	}
	if count > 0 {
		utils.SendError(c, http.StatusConflict, utils.CodeConflict, "Email already exists")
		return
	}

	if err := db.DB.Model(&models.User{}).Where("user_name = ?", input.UserName).Count(&count).Error; err != nil {
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error checking the username existence")
		return
	}
	if count > 0 {
		utils.SendError(c, http.StatusConflict, utils.CodeConflict, "Username already exists")
		return
	}

	passwordHash, err := hashPassword(input.Password)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error hashing the password")
		return
	}

	user := models.User{
		UserName: input.UserName,
		Email:    input.Email,
		Password: passwordHash,
		FullName: input.FullName,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		// the unique indexes also catch a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SendError(c, http.StatusConflict, utils.CodeConflict, "Email or username already exists")
			return
		}
		utils.LogError(err, "Error creating user")
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error creating user: "+err.Error())
		return
	}

	utils.LogSuccessWithUser(user.ID, "User registered")
	c.JSON(http.StatusCreated, user.ToResponse())
}

// @Summary User login
// @Description Authenticate with email and password, returns a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginInput true "Credentials"
// @Success 200 {object} authResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input models.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendError(c, http.StatusBadRequest, utils.CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid email or password")
		} else {
			utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Database error: "+err.Error())
		}
		return
	}

	if !samePassword(input.Password, user.Password) {
		utils.SendError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateJWT(user, tokenLifetimeHours)
	if err != nil {
		utils.LogErrorWithUser(user.ID, err, "Error generating token")
		utils.SendError(c, http.StatusInternalServerError, utils.CodeInternalError, "Error generating token")
		return
	}

	utils.LogSuccessWithUser(user.ID, "User logged in")
	c.JSON(http.StatusOK, authResponse{
		AccessToken: token,
		User:        user.Summary(),
	})
}

func hashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedPassword), nil
}

func samePassword(formPassword string, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(formPassword))
	return err == nil
}
