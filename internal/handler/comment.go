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

type CommentHandler interface {
	CreateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
	GetComments(c *gin.Context)
	GetReplies(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
	MediaService   service.MediaService
}

func NewCommentHandler(commentService service.CommentService, mediaService service.MediaService) CommentHandler {
	return &commentHandler{CommentService: commentService, MediaService: mediaService}
}

// CreateCommentRequest parent_id 不传就是一级评论
type CreateCommentRequest struct {
	Text     string  `json:"text" binding:"required"`
	ParentID *uint64 `json:"parent_id" binding:"omitempty,gt=0"`
}

// 评论：1、解析Body 2、取出登录用户 3、service层检查能否观看、父评论是否合法 4、返回新评论
func (h *commentHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID := c.Param("video_id")
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("评论参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("user_id", userID).WithField("video_id", videoID)
	if req.ParentID != nil {
		logCtx = logCtx.WithField("parent_id", *req.ParentID)
	}
	logCtx.Info("开始创建评论")

	comment, err := h.CommentService.AddComment(c.Request.Context(), userID, videoID, req.Text, req.ParentID)
	if err != nil {
		sendServiceError(c, logCtx, err, "创建评论")
		return
	}

	logCtx.WithField("comment_id", comment.ID).Info("评论创建成功")
	c.JSON(http.StatusCreated, gin.H{
		"message": "评论成功",
		"data":    dto.ToCommentResponse(comment, signer(c.Request.Context(), h.MediaService)),
	})
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "comment_id", "无效的评论ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", userID).WithField("comment_id", commentID)

	if err := h.CommentService.DeleteComment(c.Request.Context(), userID, commentID); err != nil {
		sendServiceError(c, logCtx, err, "删除评论")
		return
	}

	logCtx.Info("评论删除成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "评论已删除",
		"data":    gin.H{"comment_id": commentID},
	})
}

// 一级评论分页，每条带回复数；回复单独接口取
func (h *commentHandler) GetComments(c *gin.Context) {
	viewerID := middleware.UserID(c)
	videoID := c.Param("video_id")
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(service.DefaultCommentPageSize)))
	if err != nil {
		pageSize = service.DefaultCommentPageSize
	}
	logCtx := logger.Log.WithField("viewer_id", viewerID).WithField("video_id", videoID)

	page, err := h.CommentService.ListComments(c.Request.Context(), viewerID, videoID, queryPage(c), pageSize)
	if err != nil {
		sendServiceError(c, logCtx, err, "获取评论列表")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取评论列表成功",
		"data":    commentPage(page, signer(c.Request.Context(), h.MediaService)),
	})
}

func (h *commentHandler) GetReplies(c *gin.Context) {
	viewerID := middleware.UserID(c)
	commentID, ok := parseUintParam(c, "comment_id", "无效的评论ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("viewer_id", viewerID).WithField("comment_id", commentID)

	replies, err := h.CommentService.ListReplies(c.Request.Context(), viewerID, commentID)
	if err != nil {
		sendServiceError(c, logCtx, err, "获取回复列表")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取回复列表成功",
		"data":    dto.ToCommentResponses(replies, signer(c.Request.Context(), h.MediaService)),
	})
}

func commentPage(page *service.CommentPage, sign dto.URLSigner) *dto.PageResponse {
	return dto.NewPage(dto.ToCommentResponses(page.Comments, sign), page.Total, page.Page, page.PageSize)
}
