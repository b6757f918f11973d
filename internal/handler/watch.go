package handler

import (
	"net/http"
	"strconv"

	"Snapora/internal/dto"
	"Snapora/internal/middleware"
	"Snapora/internal/service"
	"Snapora/pkg/logger"

	"github.com/gin-gonic/gin"
)

const maxRelatedLimit = 24

type WatchHandler interface {
	Watch(c *gin.Context)
	RecordView(c *gin.Context)
	Related(c *gin.Context)
}

type watchHandler struct {
	WatchService service.WatchService
	ViewService  service.ViewService
	MediaService service.MediaService
}

func NewWatchHandler(watchService service.WatchService, viewService service.ViewService, mediaService service.MediaService) WatchHandler {
	return &watchHandler{
		WatchService: watchService,
		ViewService:  viewService,
		MediaService: mediaService,
	}
}

// 播放页：会话从 redis 读出来，service 返回新会话后再写回去
func (h *watchHandler) Watch(c *gin.Context) {
	viewerID := middleware.UserID(c)
	videoID := c.Param("video_id")
	logCtx := logger.Log.WithField("viewer_id", viewerID).WithField("video_id", videoID)

	ctx := c.Request.Context()
	sess := h.ViewService.LoadSession(ctx, middleware.SessionID(c))
	result, sess, err := h.WatchService.Watch(ctx, viewerID, videoID, sess)
	if err != nil {
		sendServiceError(c, logCtx, err, "播放视频")
		return
	}
	h.ViewService.SaveSession(ctx, sess)

	sign := signer(ctx, h.MediaService)
	resp := dto.WatchResponse{
		Video:     dto.ToVideoResponse(result.Video, sign),
		LikeState: result.LikeState,
		LikeCount: result.LikeCount,
		ViewCount: result.ViewCount,
		Related:   dto.ToVideoResponses(result.Related, sign),
	}
	// 播放页的计数以这里单独查的为准
	resp.Video.LikeCount = result.LikeCount
	resp.Video.ViewCount = result.ViewCount
	if result.Comments != nil {
		resp.Comments = commentPage(result.Comments, sign)
		resp.Video.CommentCount = result.Comments.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "获取视频成功",
		"data":    resp,
	})
}

func (h *watchHandler) RecordView(c *gin.Context) {
	viewerID := middleware.UserID(c)
	videoID := c.Param("video_id")
	logCtx := logger.Log.WithField("viewer_id", viewerID).WithField("video_id", videoID)

	ctx := c.Request.Context()
	sess := h.ViewService.LoadSession(ctx, middleware.SessionID(c))
	count, sess, err := h.WatchService.RecordView(ctx, viewerID, videoID, sess)
	if err != nil {
		sendServiceError(c, logCtx, err, "记录观看")
		return
	}
	h.ViewService.SaveSession(ctx, sess)

	c.JSON(http.StatusOK, gin.H{
		"message": "已记录观看",
		"data":    gin.H{"view_count": count},
	})
}

func (h *watchHandler) Related(c *gin.Context) {
	viewerID := middleware.UserID(c)
	videoID := c.Param("video_id")
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultRelatedLimit)))
	if err != nil {
		limit = service.DefaultRelatedLimit
	}
	if limit > maxRelatedLimit {
		limit = maxRelatedLimit
	}
	logCtx := logger.Log.WithField("viewer_id", viewerID).WithField("video_id", videoID)

	videos, err := h.WatchService.Related(c.Request.Context(), viewerID, videoID, limit)
	if err != nil {
		sendServiceError(c, logCtx, err, "获取相关视频")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取相关视频成功",
		"data":    dto.ToVideoResponses(videos, signer(c.Request.Context(), h.MediaService)),
	})
}
