package dto

import (
	"time"

	"Snapora/internal/model"
)

type CommentResponse struct {
	ID         uint64    `json:"id"`
	VideoID    string    `json:"video_id"`
	Text       string    `json:"text"`
	ParentID   *uint64   `json:"parent_id,omitempty"`
	ReplyCount int64     `json:"reply_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Author     UserInfo  `json:"author"`
}

func ToCommentResponse(comment *model.Comment, sign URLSigner) CommentResponse {
	resp := CommentResponse{
		ID:         comment.ID,
		VideoID:    comment.VideoID,
		Text:       comment.Text,
		ParentID:   comment.ParentID,
		ReplyCount: comment.ReplyCount,
		CreatedAt:  comment.CreatedAt,
		UpdatedAt:  comment.UpdatedAt,
	}
	// 安全地填充作者信息，没有 preload 时只给ID
	if comment.User.ID != 0 {
		resp.Author = ToUserInfo(&comment.User, sign)
	} else {
		resp.Author.ID = comment.UserID
	}
	return resp
}

func ToCommentResponses(comments []model.Comment, sign URLSigner) []CommentResponse {
	resp := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, ToCommentResponse(&comments[i], sign))
	}
	return resp
}
