package model

import (
	"time"
)

// gorm自带的Model里ID是uint，这里统一成uint64
// 没有DeletedAt：点赞的取消、评论的级联删除都依赖物理删除，软删除会让唯一索引和外键级联都失效
type BaseModel struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
