package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"Snapora/internal/data"
	"Snapora/internal/errs"
	"Snapora/internal/model"
	"Snapora/internal/repository"
	"Snapora/internal/storage"
	"Snapora/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen  = 8
	maxUsernameLen  = 150
	ProfilePageSize = 12
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// UpdateProfileInput ProfilePic 为 nil 表示不换头像
type UpdateProfileInput struct {
	Bio        string
	Website    string
	ProfilePic *FileInput
}

type Profile struct {
	User        *model.User
	Followers   int64
	Following   int64
	IsFollowing bool
	// 只有公开主页才带视频列表
	Videos *VideoPage
}

//go:generate mockgen -source=./user.go -package=svcmocks -destination=./mocks/user.mock.go
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	GetProfile(ctx context.Context, userID uint64) (*Profile, error)
	// GetPublicProfile 只列出公开视频
	GetPublicProfile(ctx context.Context, viewerID uint64, username string, page int) (*Profile, error)
	UpdateProfile(ctx context.Context, userID uint64, in UpdateProfileInput) (*model.User, error)
	Follow(ctx context.Context, followerID uint64, username string) error
	Unfollow(ctx context.Context, followerID uint64, username string) error
}

type userService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	videoRepo  repository.VideoRepository
	uow        data.UnitOfWork
	blobs      storage.BlobStore
	cleaner    BlobCleaner

	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	videoRepo repository.VideoRepository,
	uow data.UnitOfWork,
	blobs storage.BlobStore,
	cleaner BlobCleaner,
	jwtSecret string,
	tokenTTL time.Duration,
) UserService {
	if tokenTTL <= 0 {
		tokenTTL = 72 * time.Hour
	}
	return &userService{
		userRepo:   userRepo,
		followRepo: followRepo,
		videoRepo:  videoRepo,
		uow:        uow,
		blobs:      blobs,
		cleaner:    cleaner,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
	}
}

// isSharedKey 多个用户共用的文件，永远不删
func isSharedKey(key string) bool {
	return key == model.DefaultProfilePicKey
}

func validateRegister(in *RegisterInput) error {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || len(in.Username) > maxUsernameLen || !usernamePattern.MatchString(in.Username) {
		return errs.Validation("用户名只能包含字母、数字和 @/./+/-/_，且不超过150个字符")
	}
	if len(in.Password) < minPasswordLen {
		return errs.Validation("密码至少8位")
	}
	if in.Role == "" {
		in.Role = model.RoleConsumer
	}
	if !model.IsValidRole(in.Role) {
		return errs.Validation("无效的角色")
	}
	return nil
}

// 注册：1、校验并检查重名 2、密码加密 3、事务里创建用户，再显式设置默认头像
func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := validateRegister(&in); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, in.Username); err == nil {
		return nil, errs.Conflict("用户名已存在")
	} else if !repository.IsNotFound(err) {
		return nil, errs.Internal(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Internal(err)
	}
	user := &model.User{
		Username: in.Username,
		Email:    strings.TrimSpace(in.Email),
		Password: string(hashedPassword),
		Role:     in.Role,
	}
	err = s.uow.Execute(ctx, func(repos *data.TransactionalRepositories) error {
		if err := repos.UserRepo.Create(ctx, user); err != nil {
			return err
		}
		user.ProfilePicKey = model.DefaultProfilePicKey
		return repos.UserRepo.UpdateFields(ctx, user.ID, map[string]any{"profile_pic_key": user.ProfilePicKey})
	})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errs.Conflict("用户名已存在")
		}
		return nil, errs.Internal(err)
	}
	return user, nil
}

// 登录：1、查用户 2、比对密码 3、签发jwt，Payload里不放密码
func (s *userService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if repository.IsNotFound(err) {
			return "", errs.Unauthorized("用户名或密码错误")
		}
		return "", errs.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errs.Unauthorized("用户名或密码错误")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenTTL).Unix(),
		"iat":      now.Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", errs.Internal(err)
	}
	return tokenString, nil
}

func (s *userService) counts(ctx context.Context, profile *Profile) error {
	var err error
	if profile.Followers, err = s.followRepo.CountFollowers(ctx, profile.User.ID); err != nil {
		return errs.Internal(err)
	}
	if profile.Following, err = s.followRepo.CountFollowing(ctx, profile.User.ID); err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID uint64) (*Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("用户不存在")
		}
		return nil, errs.Internal(err)
	}
	profile := &Profile{User: user}
	if err := s.counts(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *userService) findByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("用户不存在")
		}
		return nil, errs.Internal(err)
	}
	return user, nil
}

func (s *userService) GetPublicProfile(ctx context.Context, viewerID uint64, username string, page int) (*Profile, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	profile := &Profile{User: user}
	if err := s.counts(ctx, profile); err != nil {
		return nil, err
	}
	if viewerID != Anonymous && viewerID != user.ID {
		if profile.IsFollowing, err = s.followRepo.IsFollower(ctx, user.ID, viewerID); err != nil {
			return nil, errs.Internal(err)
		}
	}

	page = normalizePage(page)
	videos, total, err := s.videoRepo.ListPublicByAuthor(ctx, user.ID, (page-1)*ProfilePageSize, ProfilePageSize)
	if err != nil {
		return nil, errs.Internal(err)
	}
	profile.Videos = &VideoPage{Videos: videos, Total: total, Page: page, PageSize: ProfilePageSize}
	return profile, nil
}

// 更新资料：新头像先上传，写库成功后再删旧头像
func (s *userService) UpdateProfile(ctx context.Context, userID uint64, in UpdateProfileInput) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errs.NotFound("用户不存在")
		}
		return nil, errs.Internal(err)
	}
	if err := validateImageFile(in.ProfilePic); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"bio":     strings.TrimSpace(in.Bio),
		"website": strings.TrimSpace(in.Website),
	}
	var newKey string
	if in.ProfilePic != nil {
		newKey = storage.NewKey(storage.PrefixProfilePic, in.ProfilePic.Name)
		if err := s.blobs.Put(ctx, newKey, in.ProfilePic.Reader, in.ProfilePic.Size, in.ProfilePic.ContentType); err != nil {
			return nil, errs.Storage(err)
		}
		fields["profile_pic_key"] = newKey
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		if newKey != "" {
			if delErr := s.blobs.Delete(ctx, newKey); delErr != nil {
				logger.Log.WithError(delErr).WithField("key", newKey).Warn("补偿删除头像失败")
			}
		}
		return nil, errs.Internal(err)
	}

	oldKey := user.ProfilePicKey
	user.Bio = fields["bio"].(string)
	user.Website = fields["website"].(string)
	if newKey != "" {
		user.ProfilePicKey = newKey
		s.cleaner.Schedule(ctx, ReasonAvatarReplaced, oldKey)
	}
	return user, nil
}

func (s *userService) followTarget(ctx context.Context, followerID uint64, username string) (*model.User, error) {
	target, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target.ID == followerID {
		return nil, errs.Validation("不能关注自己")
	}
	return target, nil
}

func (s *userService) Follow(ctx context.Context, followerID uint64, username string) error {
	target, err := s.followTarget(ctx, followerID, username)
	if err != nil {
		return err
	}
	if err := s.followRepo.Create(ctx, target.ID, followerID); err != nil {
		return errs.Internal(err)
	}
	return nil
}

func (s *userService) Unfollow(ctx context.Context, followerID uint64, username string) error {
	target, err := s.followTarget(ctx, followerID, username)
	if err != nil {
		return err
	}
	if err := s.followRepo.Delete(ctx, target.ID, followerID); err != nil {
		return errs.Internal(err)
	}
	return nil
}
