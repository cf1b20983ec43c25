package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the ideas and posts APIs under /api.
func RegisterRoutes(router gin.IRouter, ideaHandler *IdeaHandler, postHandler *PostHandler) {
	api := router.Group("/api")
	{
		api.GET("/health", Health)

		ideas := api.Group("/ideas")
		{
			ideas.GET("", ideaHandler.GetIdeas)
			ideas.POST("", ideaHandler.CreateIdea)
			ideas.GET("/tags/all", ideaHandler.GetAllTags)
			ideas.GET("/:id", ideaHandler.GetIdea)
			ideas.PUT("/:id", ideaHandler.UpdateIdea)
			ideas.DELETE("/:id", ideaHandler.DeleteIdea)
			ideas.PUT("/:id/like", ideaHandler.ToggleLike)
			ideas.POST("/:id/comments", ideaHandler.AddComment)
			ideas.GET("/:id/comments", ideaHandler.GetComments)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", postHandler.GetPosts)
			posts.POST("", postHandler.CreatePost)
			posts.GET("/tags/all", postHandler.GetAllTags)
			posts.GET("/:id", postHandler.GetPost)
			posts.PUT("/:id", postHandler.UpdatePost)
			posts.DELETE("/:id", postHandler.DeletePost)
			posts.POST("/:id/comments", postHandler.AddComment)
			posts.GET("/:id/comments", postHandler.GetComments)
		}
	}
}
