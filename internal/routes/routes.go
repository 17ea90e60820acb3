package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storynest/storynest-backend/internal/handler"
	"github.com/storynest/storynest-backend/internal/middleware"
	"github.com/storynest/storynest-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	trackingHandler *handler.TrackingHandler,
	engagementHandler *handler.EngagementHandler,
	commentHandler *handler.CommentHandler,
	progressHandler *handler.ProgressHandler,
	searchHandler *handler.SearchHandler,
	analyticsHandler *handler.AnalyticsHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Tracking endpoints accept anonymous readers; identity is used for
	// fraud windows when available
	ads := api.Group("/ads", middleware.OptionalJWTAuth(jwtManager))
	ads.POST("/:id/impression", trackingHandler.TrackImpression)
	ads.POST("/:id/click", trackingHandler.TrackClick)

	stories := api.Group("/stories")
	stories.PUT("/:id/rating", middleware.JWTAuth(jwtManager), engagementHandler.RateStory)
	stories.GET("/:id/rating", middleware.JWTAuth(jwtManager), engagementHandler.GetUserRating)
	stories.DELETE("/:id/rating", middleware.JWTAuth(jwtManager), engagementHandler.DeleteRating)
	stories.POST("/:id/follow", middleware.JWTAuth(jwtManager), engagementHandler.FollowStory)
	stories.DELETE("/:id/follow", middleware.JWTAuth(jwtManager), engagementHandler.UnfollowStory)
	stories.GET("/:id/follow", middleware.JWTAuth(jwtManager), engagementHandler.IsFollowing)
	stories.GET("/:id/progress", middleware.JWTAuth(jwtManager), progressHandler.GetStoryProgress)

	comments := api.Group("/comments")
	comments.GET("", commentHandler.ListComments)
	comments.GET("/:id", commentHandler.GetComment)
	comments.POST("", middleware.JWTAuth(jwtManager), commentHandler.CreateComment)
	comments.PATCH("/:id", middleware.JWTAuth(jwtManager), commentHandler.UpdateComment)
	comments.DELETE("/:id", middleware.JWTAuth(jwtManager), commentHandler.DeleteComment)
	comments.POST("/:id/moderate", middleware.JWTAuth(jwtManager), commentHandler.ModerateComment)

	chapters := api.Group("/chapters", middleware.JWTAuth(jwtManager))
	chapters.PUT("/:id/progress", progressHandler.SaveProgress)
	chapters.GET("/:id/progress", progressHandler.GetChapterProgress)

	me := api.Group("/me", middleware.JWTAuth(jwtManager))
	me.GET("/continue-reading", progressHandler.GetContinueReading)

	search := api.Group("/search")
	search.GET("", searchHandler.Search)
	search.GET("/suggest", searchHandler.GetSuggestions)

	analytics := api.Group("/analytics", middleware.JWTAuth(jwtManager))
	analytics.GET("/ads/:id", analyticsHandler.GetAdAnalytics)
	analytics.GET("/platform", analyticsHandler.GetPlatformAnalytics)
	analytics.GET("/campaigns/:id", analyticsHandler.GetCampaignAnalytics)
}
