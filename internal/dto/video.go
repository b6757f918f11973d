package dto

import (
	"time"

	"Snapora/internal/model"
)

type TagResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type VideoResponse struct {
	ID           string        `json:"id"`
	CreatedAt    time.Time     `json:"created_at"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Visibility   string        `json:"visibility"`
	VideoURL     string        `json:"video_url"`
	ThumbnailURL string        `json:"thumbnail_url"`
	Author       UserInfo      `json:"author"`
	Tags         []TagResponse `json:"tags"`
	LikeCount    int64         `json:"like_count"`
	ViewCount    int64         `json:"view_count"`
	CommentCount int64         `json:"comment_count"`
}

// ToVideoResponse 把DB模型转换为API响应，Author 没有 preload 时只返回 AuthorID
func ToVideoResponse(video *model.Video, sign URLSigner) VideoResponse {
	resp := VideoResponse{
		ID:           video.ID,
		CreatedAt:    video.CreatedAt,
		Title:        video.Title,
		Description:  video.Description,
		Visibility:   video.Visibility,
		VideoURL:     sign(video.VideoKey),
		ThumbnailURL: sign(video.ThumbnailKey),
		Tags:         make([]TagResponse, 0, len(video.Tags)),
		LikeCount:    video.LikeCount,
		ViewCount:    video.ViewCount,
		CommentCount: video.CommentCount,
	}
	if video.Author.ID != 0 {
		resp.Author = ToUserInfo(&video.Author, sign)
	} else {
		resp.Author.ID = video.AuthorID
	}
	for _, t := range video.Tags {
		resp.Tags = append(resp.Tags, TagResponse{Name: t.Name, Slug: t.Slug})
	}
	return resp
}

func ToVideoResponses(videos []model.Video, sign URLSigner) []VideoResponse {
	resp := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		resp = append(resp, ToVideoResponse(&videos[i], sign))
	}
	return resp
}

type WatchResponse struct {
	Video     VideoResponse   `json:"video"`
	LikeState string          `json:"like_state"`
	LikeCount int64           `json:"like_count"`
	ViewCount int64           `json:"view_count"`
	Comments  *PageResponse   `json:"comments"`
	Related   []VideoResponse `json:"related"`
}
