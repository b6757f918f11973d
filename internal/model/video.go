package model

import "time"

const (
	VisibilityPublic    = "public"
	VisibilityPrivate   = "private"
	VisibilityFollowers = "followers"
)

func IsValidVisibility(v string) bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityFollowers:
		return true
	}
	return false
}

// Video 的ID是uuid，对外不可猜测
type Video struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	AuthorID     uint64    `gorm:"not null;index"`
	Title        string    `gorm:"size:100;not null"`
	Description  string    `gorm:"type:text"`
	Visibility   string    `gorm:"size:10;not null;index"`
	VideoKey     string    `gorm:"size:200;not null"`
	ThumbnailKey string    `gorm:"size:200"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time

	Author User  `gorm:"foreignKey:AuthorID;references:ID"`
	Tags   []Tag `gorm:"many2many:video_tags;"`

	// 以下字段只在列表查询时通过子查询填充，不建列
	LikeCount    int64 `gorm:"->;-:migration"`
	ViewCount    int64 `gorm:"->;-:migration"`
	CommentCount int64 `gorm:"->;-:migration"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) TagIDs() []uint64 {
	ids := make([]uint64, 0, len(v.Tags))
	for _, t := range v.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}
