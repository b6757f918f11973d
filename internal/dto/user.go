package dto

import (
	"time"

	"Snapora/internal/model"
)

// URLSigner 把存储 key 换成可以直接访问的地址
type URLSigner func(key string) string

// UserInfo 嵌在视频、评论里的简化用户信息
type UserInfo struct {
	ID         uint64 `json:"id"`
	Username   string `json:"username"`
	ProfilePic string `json:"profile_pic,omitempty"`
}

func ToUserInfo(user *model.User, sign URLSigner) UserInfo {
	info := UserInfo{ID: user.ID, Username: user.Username}
	if sign != nil {
		info.ProfilePic = sign(user.ProfilePicKey)
	}
	return info
}

type UserResponse struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role"`
	Bio        string    `json:"bio"`
	Website    string    `json:"website"`
	ProfilePic string    `json:"profile_pic"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToUserResponse(user *model.User, sign URLSigner) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		Bio:        user.Bio,
		Website:    user.Website,
		ProfilePic: sign(user.ProfilePicKey),
		CreatedAt:  user.CreatedAt,
	}
}

type ProfileResponse struct {
	User        UserResponse  `json:"user"`
	Followers   int64         `json:"followers"`
	Following   int64         `json:"following"`
	IsFollowing bool          `json:"is_following"`
	Videos      *PageResponse `json:"videos,omitempty"`
}
