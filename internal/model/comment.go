package model

type Comment struct {
	BaseModel
	VideoID string `gorm:"type:char(36);not null;index"`
	UserID  uint64 `gorm:"not null;index"`
	Text    string `gorm:"type:text;not null"`
	// nil 表示一级评论
	ParentID *uint64 `gorm:"index"`

	User   User     `gorm:"foreignKey:UserID"`
	Parent *Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`

	ReplyCount int64 `gorm:"->;-:migration"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}
