package handler

import (
	"net/http"

	"Snapora/internal/service"
	"Snapora/pkg/logger"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	ToggleLike(c *gin.Context)
}

type likeHandler struct {
	LikeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) LikeHandler {
	return &likeHandler{LikeService: likeService}
}

// 点赞：同一个接口来回切换，返回这次的动作和最新点赞数
func (h *likeHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID := c.Param("video_id")
	logCtx := logger.Log.WithField("user_id", userID).WithField("video_id", videoID)

	result, err := h.LikeService.ToggleLike(c.Request.Context(), userID, videoID)
	if err != nil {
		sendServiceError(c, logCtx, err, "点赞")
		return
	}

	logCtx.WithField("action", result.Action).Info("点赞状态已切换")
	c.JSON(http.StatusOK, gin.H{
		"message": "操作成功",
		"data":    result,
	})
}
