package handler

import (
	"github.com/CoinLift/backend-coinlift/internal/realtime"
	"github.com/CoinLift/backend-coinlift/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
	hub      *realtime.Hub
}

func New(services *service.Service, hub *realtime.Hub) *Handler {
	return &Handler{
		services: services,
		hub: hub,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.authRegister)
			auth.POST("/authenticate", h.authAuthenticate)
		}

		users := v1.Group("/users")
		{
			users.POST("/:username/follow", h.authMiddleware, h.usersFollow)
			users.POST("/:username/unfollow", h.authMiddleware, h.usersUnfollow)

			users.GET("/main/:userID", h.identityMiddleware, h.usersGetMainInfo)
			users.GET("/:userID/followers", h.usersGetFollowers)
			users.GET("/:userID/following", h.usersGetFollowing)
			users.GET("/:userID/followers/count", h.usersGetFollowerCount)
			users.GET("/:userID/following/count", h.usersGetFollowingCount)
		}

		posts := v1.Group("/posts")
		{
			posts.POST("", h.authMiddleware, h.postsCreate)

			comments := posts.Group("/:postID")
			{
				comments.GET("/comments", h.identityMiddleware, h.commentsGetAll)
				comments.POST("/comments", h.authMiddleware, h.commentsCreate)
				comments.PATCH("/comments/:commentID", h.authMiddleware, h.commentsUpdate)
				comments.DELETE("/comments/:commentID", h.authMiddleware, h.commentsDelete)
			}
		}

		likes := v1.Group("/likes")
		{
			likes.Use(h.authMiddleware)

			likes.POST("/:postID", h.likesAdd)
			likes.DELETE("/:postID", h.likesRemove)
		}

		replies := v1.Group("/replies")
		{
			replies.GET("/:commentID", h.identityMiddleware, h.repliesGetAll)
			replies.POST("/:commentID", h.authMiddleware, h.repliesCreate)
		}

		v1.GET("/notifications/ws", h.authMiddleware, h.notificationsChannel)
	}

	return r
}

// getPrincipal returns the identity resolved by the middlewares, or the
// anonymous principal when none was set.
func (h *Handler) getPrincipal(c *gin.Context) service.Principal {
	value, ok := c.Get("principal")
	if !ok {
		return service.Anonymous
	}

	p, ok := value.(service.Principal)
	if !ok {
		return service.Anonymous
	}

	return p
}
