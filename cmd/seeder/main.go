// cmd/seeder/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"Snapora/internal/config"
	"Snapora/internal/model"
	"Snapora/internal/repository"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	userCount    = 50
	videoCount   = 200
	likeCount    = 1000
	commentCount = 600
	viewCount    = 3000
)

var sampleTags = []string{"music", "dance", "travel", "food", "gaming", "pets", "comedy", "sports", "tech", "diy"}

func main() {
	fmt.Println("🚀 开始填充测试数据...")
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ 配置加载失败: %v", err)
	}

	// --- 1. 连接数据库 ---
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 2. 清理旧数据，注意：这将删除所有数据！ ---
	fmt.Println("🧹 正在清理旧数据...")
	if err := db.Migrator().DropTable("video_tags", &model.View{}, &model.Comment{}, &model.Like{}, &model.Video{}, &model.Tag{}, &model.Follow{}, &model.User{}); err != nil {
		log.Fatalf("❌ 删除旧表失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Tag{}, &model.Video{}, &model.Like{}, &model.Comment{}, &model.View{}); err != nil {
		log.Fatalf("❌ 数据库迁移失败: %v", err)
	}
	fmt.Println("✅ 数据库迁移成功!")

	ctx := context.Background()
	r := rand.New(rand.NewSource(42))

	// --- 3. 创建用户，所有人的密码都是 "password" ---
	fmt.Println("👥 正在创建用户...")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ 密码加密失败: %v", err)
	}
	roles := []string{model.RoleConsumer, model.RoleCreator, model.RoleCreator, model.RoleAdmin}
	userIDs := make([]uint64, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := model.User{
			// faker 不保证唯一，加上序号
			Username:      fmt.Sprintf("%s_%d", faker.Username(), i),
			Email:         faker.Email(),
			Password:      string(hashedPassword),
			Role:          roles[i%len(roles)],
			Bio:           faker.Sentence(),
			Website:       faker.URL(),
			ProfilePicKey: model.DefaultProfilePicKey,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("❌ 创建用户失败: %v", err)
		}
		userIDs = append(userIDs, user.ID)
	}
	fmt.Printf("✅ 成功创建 %d 个用户!\n", len(userIDs))

	// --- 4. 关注关系 ---
	fmt.Println("🤝 正在创建关注关系...")
	for i := 0; i < userCount*3; i++ {
		userID, followerID := pick(r, userIDs), pick(r, userIDs)
		if userID == followerID {
			continue
		}
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Follow{UserID: userID, FollowerID: followerID})
	}

	// --- 5. 标签和视频 ---
	fmt.Println("🎬 正在创建视频...")
	tags, err := repository.NewTagRepository(db).GetOrCreateByNames(ctx, sampleTags)
	if err != nil {
		log.Fatalf("❌ 创建标签失败: %v", err)
	}
	visibilities := []string{model.VisibilityPublic, model.VisibilityPublic, model.VisibilityPublic, model.VisibilityFollowers, model.VisibilityPrivate}
	videoIDs := make([]string, 0, videoCount)
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			ID:          uuid.NewString(),
			AuthorID:    pick(r, userIDs),
			Title:       truncate(faker.Sentence(), 100),
			Description: faker.Paragraph(),
			Visibility:  visibilities[r.Intn(len(visibilities))],
			// 指向同一个示例文件，播放页能拿到签名地址即可
			VideoKey:     "videos/sample.mp4",
			ThumbnailKey: "thumbnails/sample.jpg",
			Tags:         pickTags(r, tags),
		}
		if err := db.Create(&video).Error; err != nil {
			log.Fatalf("❌ 创建视频失败: %v", err)
		}
		videoIDs = append(videoIDs, video.ID)
	}
	fmt.Printf("✅ 成功创建 %d 个视频!\n", len(videoIDs))

	// --- 6. 点赞，其中一部分是点踩，用来覆盖"点踩->点赞"这条路径 ---
	fmt.Println("👍 正在创建随机点赞...")
	for i := 0; i < likeCount; i++ {
		like := model.Like{
			UserID:  pick(r, userIDs),
			VideoID: videoIDs[r.Intn(len(videoIDs))],
			IsLike:  r.Intn(5) != 0,
		}
		// 唯一键冲突时什么都不做
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).Create(&like)
	}

	// --- 7. 评论和回复 ---
	fmt.Println("💬 正在创建评论...")
	topLevel := make([]model.Comment, 0, commentCount)
	for i := 0; i < commentCount; i++ {
		comment := model.Comment{
			VideoID: videoIDs[r.Intn(len(videoIDs))],
			UserID:  pick(r, userIDs),
			Text:    faker.Sentence(),
		}
		if len(topLevel) > 0 && r.Intn(3) == 0 {
			// 回复只能挂在一级评论下，和父评论属于同一个视频
			parent := topLevel[r.Intn(len(topLevel))]
			comment.VideoID = parent.VideoID
			comment.ParentID = &parent.ID
		}
		if err := db.Create(&comment).Error; err != nil {
			log.Fatalf("❌ 创建评论失败: %v", err)
		}
		if comment.ParentID == nil {
			topLevel = append(topLevel, comment)
		}
	}

	// --- 8. 观看记录，登录用户每个视频一条，匿名的不限 ---
	fmt.Println("👀 正在创建观看记录...")
	for i := 0; i < viewCount; i++ {
		view := model.View{VideoID: videoIDs[r.Intn(len(videoIDs))]}
		if r.Intn(2) == 0 {
			userID := pick(r, userIDs)
			view.UserID = &userID
		}
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&view)
	}

	fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
}

func pick(r *rand.Rand, ids []uint64) uint64 {
	return ids[r.Intn(len(ids))]
}

func pickTags(r *rand.Rand, tags []model.Tag) []model.Tag {
	n := r.Intn(4)
	perm := r.Perm(len(tags))
	out := make([]model.Tag, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, tags[idx])
	}
	return out
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
