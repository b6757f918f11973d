package router

import (
	"net/http"
	"time"

	"Snapora/internal/handler"
	"Snapora/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	JWTSecret     string
	SessionCookie string
	SessionTTL    time.Duration
	SessionSecure bool
	AllowOrigins  []string
	// 登录、注册、上传共用一个按 IP+路由 的限流器
	Limiter *middleware.KeyedRateLimiter
	Metrics *middleware.MetricsBuilder
}

type Handlers struct {
	User    handler.UserHandler
	Video   handler.VideoHandler
	Like    handler.LikeHandler
	Comment handler.CommentHandler
	Watch   handler.WatchHandler
}

func SetupRouter(opts Options, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Build())
	}
	r.Use(middleware.CORSMiddleware(opts.AllowOrigins))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pang",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := func(c *gin.Context) { c.Next() }
	if opts.Limiter != nil {
		limited = middleware.RateLimitMiddleware(opts.Limiter)
	}
	session := middleware.ViewSessionMiddleware(opts.SessionCookie, opts.SessionTTL, opts.SessionSecure)

	apiV1 := r.Group("/api/v1")
	{
		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/register", limited, h.User.Register)
			userGroup.POST("/login", limited, h.User.Login)
		}

		// 匿名可访问，带了令牌就按登录用户处理
		public := apiV1.Group("/")
		public.Use(middleware.OptionalAuthMiddleware(opts.JWTSecret))
		{
			public.GET("/users/:username", h.User.GetPublicProfile)
			public.GET("/feed", h.Video.GetFeed)
			public.GET("/search", h.Video.Search)
			public.GET("/tags/:slug", h.Video.GetTagVideos)
			public.GET("/videos/:video_id", session, h.Watch.Watch)
			public.POST("/videos/:video_id/views", session, h.Watch.RecordView)
			public.GET("/videos/:video_id/comments", h.Comment.GetComments)
			public.GET("/videos/:video_id/related", h.Watch.Related)
			public.GET("/comments/:comment_id/replies", h.Comment.GetReplies)
		}

		authorized := apiV1.Group("/")
		authorized.Use(middleware.AuthMiddleware(opts.JWTSecret))
		{
			authorized.GET("/profile", h.User.GetProfile)
			authorized.PUT("/profile", h.User.UpdateProfile)
			authorized.POST("/users/:username/follow", h.User.Follow)
			authorized.DELETE("/users/:username/follow", h.User.Unfollow)

			authorized.POST("/videos", limited, h.Video.CreateVideo)
			authorized.PUT("/videos/:video_id", h.Video.UpdateVideo)
			authorized.DELETE("/videos/:video_id", h.Video.DeleteVideo)

			authorized.POST("/videos/:video_id/like", h.Like.ToggleLike)

			authorized.POST("/videos/:video_id/comments", h.Comment.CreateComment)
			authorized.DELETE("/comments/:comment_id", h.Comment.DeleteComment)
		}
	}

	return r
}
