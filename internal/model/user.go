package model

const (
	RoleConsumer = "consumer"
	RoleCreator  = "creator"
	RoleAdmin    = "admin"

	DefaultProfilePicKey = "profile_pics/default.png"
)

type User struct {
	BaseModel
	Username      string `gorm:"size:150;uniqueIndex;not null"`
	Email         string `gorm:"size:254"`
	Password      string `gorm:"not null" json:"-"`
	Role          string `gorm:"size:10;not null"`
	Bio           string `gorm:"type:text"`
	Website       string `gorm:"size:200"`
	ProfilePicKey string `gorm:"size:200"`
}

func IsValidRole(role string) bool {
	switch role {
	case RoleConsumer, RoleCreator, RoleAdmin:
		return true
	}
	return false
}

// Follow 关注关系：FollowerID 关注了 UserID，方向是不对称的
type Follow struct {
	BaseModel
	UserID     uint64 `gorm:"not null;uniqueIndex:idx_user_follower"`
	FollowerID uint64 `gorm:"not null;uniqueIndex:idx_user_follower;index"`
}

func (Follow) TableName() string {
	return "follows"
}
