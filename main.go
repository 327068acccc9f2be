package main

import (
	"os"

	"instashare-backend/db"
	_ "instashare-backend/docs"
	"instashare-backend/routes"
	"instashare-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title InstaShare API
// @version 1.0
// @description Social feed backend: posts, comments, likes
// @host localhost:8080
// @BasePath /api/v1
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {
	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	if err := utils.InitCloudinary(); err != nil {
		utils.LogError(err, "Cloudinary initialization failed, avatar upload will not work")
	}

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		utils.LogError(err, "Error starting the server")
		os.Exit(1)
	}
}
