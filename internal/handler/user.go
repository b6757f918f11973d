package handler

import (
	"net/http"

	"Snapora/internal/dto"
	"Snapora/internal/middleware"
	"Snapora/internal/service"
	"Snapora/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	GetPublicProfile(c *gin.Context)
	Follow(c *gin.Context)
	Unfollow(c *gin.Context)
}

type userHandler struct {
	UserService  service.UserService
	MediaService service.MediaService
}

func NewUserHandler(userService service.UserService, mediaService service.MediaService) UserHandler {
	return &userHandler{UserService: userService, MediaService: mediaService}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"omitempty,email"`
	Role     string `json:"role" binding:"omitempty,role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Bio     string `form:"bio"`
	Website string `form:"website" binding:"omitempty,url,max=200"`
}

// 注册：1、解析注册请求 2、service层校验并创建用户 3、返回新用户信息
func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("请求参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理用户注册请求")

	user, err := h.UserService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		sendServiceError(c, logCtx, err, "用户注册")
		return
	}

	logCtx.WithField("user_id", user.ID).Info("用户注册成功")
	c.JSON(http.StatusCreated, gin.H{
		"message": "注册成功",
		"data":    dto.ToUserResponse(user, signer(c.Request.Context(), h.MediaService)),
	})
}

// 登录：成功则返回 token，失败统一提示用户名或密码错误
func (h *userHandler) Login(c *gin.Context) {
	var login LoginRequest
	if err := c.ShouldBindJSON(&login); err != nil {
		logger.Log.WithError(err).Error("登录请求参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("username", login.Username)
	logCtx.Info("开始处理用户登录请求")

	token, err := h.UserService.Login(c.Request.Context(), login.Username, login.Password)
	if err != nil {
		sendServiceError(c, logCtx, err, "用户登录")
		return
	}

	logCtx.Info("用户登录成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"data": gin.H{
			"token": token,
		},
	})
}

func (h *userHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", userID)

	profile, err := h.UserService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		sendServiceError(c, logCtx, err, "获取个人信息")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "成功获取用户信息",
		"data":    h.toProfileResponse(c, profile),
	})
}

// 修改资料：表单里 profile_pic 可选，换头像后旧头像由 service 负责清理
func (h *userHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Log.WithError(err).Error("修改资料参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("user_id", userID)
	pic, closeFile, err := formFile(c, "profile_pic")
	if err != nil {
		sendServiceError(c, logCtx, err, "解析头像")
		return
	}
	defer closeFile()

	logCtx.Info("开始修改个人资料")
	user, err := h.UserService.UpdateProfile(c.Request.Context(), userID, service.UpdateProfileInput{
		Bio:        req.Bio,
		Website:    req.Website,
		ProfilePic: pic,
	})
	if err != nil {
		sendServiceError(c, logCtx, err, "修改个人资料")
		return
	}

	logCtx.Info("个人资料修改成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "资料已更新",
		"data":    dto.ToUserResponse(user, signer(c.Request.Context(), h.MediaService)),
	})
}

// 公开主页：匿名也能看，只列公开视频
func (h *userHandler) GetPublicProfile(c *gin.Context) {
	viewerID := middleware.UserID(c)
	username := c.Param("username")
	logCtx := logger.Log.WithField("viewer_id", viewerID).WithField("username", username)

	profile, err := h.UserService.GetPublicProfile(c.Request.Context(), viewerID, username, queryPage(c))
	if err != nil {
		sendServiceError(c, logCtx, err, "获取用户主页")
		return
	}
	resp := h.toProfileResponse(c, profile)
	// 别人的邮箱不返回
	resp.User.Email = ""
	c.JSON(http.StatusOK, gin.H{
		"message": "获取用户主页成功",
		"data":    resp,
	})
}

func (h *userHandler) Follow(c *gin.Context) {
	h.changeFollow(c, true)
}

func (h *userHandler) Unfollow(c *gin.Context) {
	h.changeFollow(c, false)
}

func (h *userHandler) changeFollow(c *gin.Context, follow bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	username := c.Param("username")
	logCtx := logger.Log.WithField("user_id", userID).WithField("target", username)

	var err error
	message := "关注成功"
	if follow {
		err = h.UserService.Follow(c.Request.Context(), userID, username)
	} else {
		message = "已取消关注"
		err = h.UserService.Unfollow(c.Request.Context(), userID, username)
	}
	if err != nil {
		sendServiceError(c, logCtx, err, "修改关注关系")
		return
	}

	logCtx.WithField("follow", follow).Info("关注关系已更新")
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data": gin.H{
			"username":     username,
			"is_following": follow,
		},
	})
}

func (h *userHandler) toProfileResponse(c *gin.Context, profile *service.Profile) dto.ProfileResponse {
	sign := signer(c.Request.Context(), h.MediaService)
	resp := dto.ProfileResponse{
		User:        dto.ToUserResponse(profile.User, sign),
		Followers:   profile.Followers,
		Following:   profile.Following,
		IsFollowing: profile.IsFollowing,
	}
	if profile.Videos != nil {
		resp.Videos = videoPage(profile.Videos, sign)
	}
	return resp
}
