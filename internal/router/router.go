package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Leonidos67/t-sync-sub000/internal/config"
	"github.com/Leonidos67/t-sync-sub000/internal/handler"
	"github.com/Leonidos67/t-sync-sub000/internal/middleware"
	"github.com/Leonidos67/t-sync-sub000/internal/pkg"
	"github.com/Leonidos67/t-sync-sub000/internal/repository/redis"
)

func InitRouter(cfg config.Config, db *gorm.DB, cache *redis.ReactionCacheRepository, lock *redis.DistLock) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.AccessLog(pkg.Logger))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	secret := []byte(cfg.JWTSecret)

	user := handler.NewUserHandler(db)
	follow := handler.NewFollowHandler(db)
	club := handler.NewClubHandler(db)
	post := handler.NewPostHandler(db)
	reaction := handler.NewReactionHandler(db, cache, lock)
	feed := handler.NewFeedHandler(db)

	api := r.Group("/api")

	// Profiles and follow listings are public reads.
	users := api.Group("/users")
	{
		users.GET("/:handle", user.Profile)
		users.GET("/:handle/followers", follow.ListFollowers)
		users.GET("/:handle/following", follow.ListFollowing)
	}

	// Follow mutations need a verified actor.
	usersAuth := api.Group("/users")
	usersAuth.Use(middleware.Auth(secret))
	{
		usersAuth.POST("/:handle/follow", follow.Follow)
		usersAuth.DELETE("/:handle/follow", follow.Unfollow)
	}

	// Feeds: global and popular accept anonymous viewers, the friends feed
	// needs one to filter by.
	feeds := api.Group("/feed")
	feeds.Use(middleware.OptionalAuth(secret))
	{
		feeds.GET("", feed.Global)
		feeds.GET("/popular", feed.Popular)
	}
	feedsAuth := api.Group("/feed")
	feedsAuth.Use(middleware.Auth(secret))
	{
		feedsAuth.GET("/friends", feed.Friends)
	}

	posts := api.Group("/posts")
	posts.Use(middleware.Auth(secret))
	{
		posts.POST("", post.Create)
		posts.DELETE("/:id", post.Delete)
		posts.POST("/:id/reactions/:kind", reaction.Toggle)
		posts.GET("/:id/reactions/:kind/count", reaction.Count)
	}

	clubs := api.Group("/clubs")
	{
		clubs.GET("", club.List)
		clubs.GET("/:id", club.Get)
	}
	clubsAuth := api.Group("/clubs")
	clubsAuth.Use(middleware.Auth(secret))
	{
		clubsAuth.POST("", club.Create)
		clubsAuth.POST("/:id/join", club.Join)
		clubsAuth.POST("/:id/leave", club.Leave)
		clubsAuth.DELETE("/:id", club.Delete)
		clubsAuth.PUT("/:id/appearance", club.UpdateAppearance)
		clubsAuth.PUT("/:id/action-button", club.UpdateActionButton)
		clubsAuth.PUT("/:id/avatar", club.SetAvatar)
		clubsAuth.DELETE("/:id/avatar", club.ClearAvatar)
	}

	return r
}
