package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"Snapora/internal/dto"
	"Snapora/internal/errs"
	"Snapora/internal/middleware"
	"Snapora/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrorResponse 定义了标准的API错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

// sendErrorResponse 是一个辅助函数，用于发送标准格式的错误响应
func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// sendServiceError 按错误分类决定状态码；存储和内部错误只记日志，不把原因返回给用户
func sendServiceError(c *gin.Context, logCtx *logrus.Entry, err error, action string) {
	switch errs.KindOf(err) {
	case errs.KindStorage, errs.KindInternal:
		logCtx.WithError(err).Error(action + "失败")
	default:
		logCtx.WithError(err).Warn(action + "被拒绝")
	}
	sendErrorResponse(c, errs.HTTPStatus(err), errs.PublicMessage(err))
}

// currentUserID 只用在挂了 AuthMiddleware 的路由上
func currentUserID(c *gin.Context) (uint64, bool) {
	userID := middleware.UserID(c)
	if userID == service.Anonymous {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return 0, false
	}
	return userID, true
}

func queryPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	if page > service.MaxPage {
		return service.MaxPage
	}
	return page
}

func parseUintParam(c *gin.Context, name, msg string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(c, http.StatusBadRequest, msg)
		return 0, false
	}
	return id, true
}

func signer(ctx context.Context, media service.MediaService) dto.URLSigner {
	return func(key string) string {
		return media.SignedURL(ctx, key)
	}
}

// formFile 没上传这个字段时返回 nil，调用方负责 close
func formFile(c *gin.Context, field string) (*service.FileInput, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, errs.Validation("文件解析失败")
	}
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, errs.Validation("文件解析失败")
	}
	return toFileInput(header, f), func() { _ = f.Close() }, nil
}

func toFileInput(header *multipart.FileHeader, f multipart.File) *service.FileInput {
	return &service.FileInput{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      f,
	}
}

func videoPage(page *service.VideoPage, sign dto.URLSigner) *dto.PageResponse {
	return dto.NewPage(dto.ToVideoResponses(page.Videos, sign), page.Total, page.Page, page.PageSize)
}
