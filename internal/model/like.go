package model

// 一个用户对一个视频只有一行，(user_id, video_id) 的联合唯一索引由数据库保证
// IsLike 不能加 default 标签，否则gorm在写入false时会用默认值覆盖
type Like struct {
	BaseModel
	UserID  uint64 `gorm:"not null;uniqueIndex:idx_user_video"`
	VideoID string `gorm:"type:char(36);not null;uniqueIndex:idx_user_video;index"`
	IsLike  bool   `gorm:"not null"`
}

func (Like) TableName() string {
	return "likes"
}
