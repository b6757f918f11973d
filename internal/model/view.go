package model

// UserID 为 nil 表示匿名观看
// MySQL 的唯一索引允许多个 NULL，所以登录用户每个视频只有一行，匿名观看不受影响
type View struct {
	BaseModel
	UserID  *uint64 `gorm:"uniqueIndex:idx_view_user_video"`
	VideoID string  `gorm:"type:char(36);not null;uniqueIndex:idx_view_user_video;index"`
}

func (View) TableName() string {
	return "views"
}
