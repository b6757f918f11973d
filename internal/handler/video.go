package handler

import (
	"net/http"

	"Snapora/internal/dto"
	"Snapora/internal/service"
	"Snapora/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	CreateVideo(c *gin.Context)
	UpdateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
	GetFeed(c *gin.Context)
	GetTagVideos(c *gin.Context)
	Search(c *gin.Context)
}

type videoHandler struct {
	VideoService  service.VideoService
	SearchService service.SearchService
	MediaService  service.MediaService
}

func NewVideoHandler(videoService service.VideoService, searchService service.SearchService, mediaService service.MediaService) VideoHandler {
	return &videoHandler{
		VideoService:  videoService,
		SearchService: searchService,
		MediaService:  mediaService,
	}
}

// VideoForm 上传和编辑共用的表单，文件字段单独取
type VideoForm struct {
	Title       string `form:"title" binding:"required,max=100"`
	Description string `form:"description"`
	Visibility  string `form:"visibility" binding:"omitempty,visibility"`
	Tags        string `form:"tags" binding:"omitempty,tagslist"`
}

type SearchRequest struct {
	Query string `form:"q"`
	Sort  string `form:"sort" binding:"omitempty,sortorder"`
}

// videoFiles 取出表单里的视频和封面，两个都可能没传
func videoFiles(c *gin.Context) (video, thumbnail *service.FileInput, closeAll func(), err error) {
	video, closeVideo, err := formFile(c, "video_file")
	if err != nil {
		return nil, nil, func() {}, err
	}
	thumbnail, closeThumb, err := formFile(c, "thumbnail")
	if err != nil {
		closeVideo()
		return nil, nil, func() {}, err
	}
	return video, thumbnail, func() {
		closeVideo()
		closeThumb()
	}, nil
}

// 上传视频：1、解析表单 2、取出文件 3、service层先写对象存储再落库 4、返回新视频
func (h *videoHandler) CreateVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req VideoForm
	if err := c.ShouldBind(&req); err != nil {
		logger.Log.WithError(err).Error("上传视频参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("user_id", userID)
	file, thumbnail, closeAll, err := videoFiles(c)
	if err != nil {
		sendServiceError(c, logCtx, err, "解析上传文件")
		return
	}
	defer closeAll()

	logCtx.Info("开始上传视频")
	video, err := h.VideoService.Upload(c.Request.Context(), service.UploadInput{
		AuthorID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		Tags:        req.Tags,
		File:        file,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		sendServiceError(c, logCtx, err, "上传视频")
		return
	}

	logCtx.WithField("video_id", video.ID).Info("视频上传成功")
	c.JSON(http.StatusCreated, gin.H{
		"message": "视频上传成功",
		"data":    dto.ToVideoResponse(video, signer(c.Request.Context(), h.MediaService)),
	})
}

// 编辑视频：表单整体提交，不是作者一律返回视频不存在
func (h *videoHandler) UpdateVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID := c.Param("video_id")
	var req VideoForm
	if err := c.ShouldBind(&req); err != nil {
		logger.Log.WithError(err).Error("编辑视频参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("user_id", userID).WithField("video_id", videoID)
	file, thumbnail, closeAll, err := videoFiles(c)
	if err != nil {
		sendServiceError(c, logCtx, err, "解析上传文件")
		return
	}
	defer closeAll()

	logCtx.Info("开始编辑视频")
	video, err := h.VideoService.Edit(c.Request.Context(), service.EditInput{
		UserID:      userID,
		VideoID:     videoID,
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		Tags:        req.Tags,
		File:        file,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		sendServiceError(c, logCtx, err, "编辑视频")
		return
	}

	logCtx.Info("视频编辑成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "视频已更新",
		"data":    dto.ToVideoResponse(video, signer(c.Request.Context(), h.MediaService)),
	})
}

func (h *videoHandler) DeleteVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videoID := c.Param("video_id")
	logCtx := logger.Log.WithField("user_id", userID).WithField("video_id", videoID)

	logCtx.Info("开始删除视频")
	if err := h.VideoService.Delete(c.Request.Context(), userID, videoID); err != nil {
		sendServiceError(c, logCtx, err, "删除视频")
		return
	}

	logCtx.Info("视频删除成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "视频已删除",
		"data":    gin.H{"video_id": videoID},
	})
}

// 首页：公开视频按时间倒序分页
func (h *videoHandler) GetFeed(c *gin.Context) {
	page := queryPage(c)
	logCtx := logger.Log.WithField("page", page)

	result, err := h.VideoService.Feed(c.Request.Context(), page)
	if err != nil {
		sendServiceError(c, logCtx, err, "获取视频列表")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取视频列表成功",
		"data":    videoPage(result, signer(c.Request.Context(), h.MediaService)),
	})
}

func (h *videoHandler) GetTagVideos(c *gin.Context) {
	slug := c.Param("slug")
	logCtx := logger.Log.WithField("tag", slug)

	tag, result, err := h.VideoService.ListByTag(c.Request.Context(), slug, queryPage(c))
	if err != nil {
		sendServiceError(c, logCtx, err, "获取标签视频")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取标签视频成功",
		"data": gin.H{
			"tag":    dto.TagResponse{Name: tag.Name, Slug: tag.Slug},
			"videos": videoPage(result, signer(c.Request.Context(), h.MediaService)),
		},
	})
}

// 搜索：关键词为空时返回全部公开视频
func (h *videoHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Log.WithError(err).Warn("搜索参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的排序方式")
		return
	}
	logCtx := logger.Log.WithField("q", req.Query).WithField("sort", req.Sort)

	result, err := h.SearchService.Search(c.Request.Context(), req.Query, req.Sort, queryPage(c))
	if err != nil {
		sendServiceError(c, logCtx, err, "搜索视频")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "搜索成功",
		"data":    videoPage(result, signer(c.Request.Context(), h.MediaService)),
	})
}
