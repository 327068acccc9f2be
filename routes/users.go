package routes

import (
	"instashare-backend/handlers/users"
	"instashare-backend/middleware"

	"github.com/gin-gonic/gin"
)

func UsersRoutes(api *gin.RouterGroup) {
	usersRoutes := api.Group("/users")
	usersRoutes.Use(middleware.JWTAuth())
	{
		usersRoutes.GET("/me", users.GetMe)
		usersRoutes.PUT("/me/avatar", users.UpdateAvatar)
	}
}
