package routes

import (
	"instashare-backend/handlers/posts"
	"instashare-backend/handlers/posts/comment"
	"instashare-backend/handlers/posts/likes"
	"instashare-backend/middleware"

	"github.com/gin-gonic/gin"
)

// Every post route requires an authenticated actor: reads need the viewer
// identity for viewerHasLiked, writes need it for ownership
func PostsRoutes(api *gin.RouterGroup) {
	postsRoutes := api.Group("/posts")
	postsRoutes.Use(middleware.JWTAuth())
	{
		postsRoutes.POST("", posts.CreatePost)
		postsRoutes.GET("", posts.GetFeed)
		postsRoutes.GET("/:id", posts.GetPostByID)
		postsRoutes.DELETE("/:id", posts.DeletePost)

		postsRoutes.POST("/:id/like", likes.LikePost)
		postsRoutes.DELETE("/:id/like", likes.UnlikePost)

		postsRoutes.POST("/:id/comments", comment.CreateComment)
		postsRoutes.GET("/:id/comments", comment.GetCommentsByPostID)
	}
}
