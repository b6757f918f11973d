package service

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"Snapora/internal/data"
	"Snapora/internal/model"
	"Snapora/internal/repository"
)

// 以下是各个 Repository 的内存实现，只用于测试多步骤的业务规则

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[string]*model.Video
	cache  map[string]*model.Video

	createErr error
	findCalls int

	byTags      []model.Video
	byTagsErr   error
	byOwner     []model.Video
	ownerLimit  int
	ownerIgnore []string
}

func newFakeVideoRepo(videos ...*model.Video) *fakeVideoRepo {
	r := &fakeVideoRepo{videos: map[string]*model.Video{}, cache: map[string]*model.Video{}}
	for _, v := range videos {
		r.videos[v.ID] = v
	}
	return r
}

func (r *fakeVideoRepo) Create(_ context.Context, video *model.Video) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *video
	r.videos[video.ID] = &cp
	return nil
}

func (r *fakeVideoRepo) FindByID(_ context.Context, videoID string) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	v, ok := r.videos[videoID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVideoRepo) Update(_ context.Context, video *model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[video.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Title, v.Description, v.Visibility = video.Title, video.Description, video.Visibility
	v.VideoKey, v.ThumbnailKey = video.VideoKey, video.ThumbnailKey
	return nil
}

func (r *fakeVideoRepo) ReplaceTags(_ context.Context, video *model.Video, tags []model.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.videos[video.ID]; ok {
		v.Tags = tags
	}
	video.Tags = tags
	return nil
}

func (r *fakeVideoRepo) DeleteWithRelations(_ context.Context, videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[videoID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.videos, videoID)
	return nil
}

func (r *fakeVideoRepo) publicBy(filter func(v *model.Video) bool) []model.Video {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Video
	for _, v := range r.videos {
		if v.Visibility == model.VisibilityPublic && filter(v) {
			out = append(out, *v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func paginate(videos []model.Video, offset, limit int) []model.Video {
	if offset >= len(videos) {
		return []model.Video{}
	}
	end := offset + limit
	if end > len(videos) {
		end = len(videos)
	}
	return videos[offset:end]
}

func (r *fakeVideoRepo) ListPublic(_ context.Context, offset, limit int) ([]model.Video, int64, error) {
	all := r.publicBy(func(*model.Video) bool { return true })
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *fakeVideoRepo) ListPublicByAuthor(_ context.Context, authorID uint64, offset, limit int) ([]model.Video, int64, error) {
	all := r.publicBy(func(v *model.Video) bool { return v.AuthorID == authorID })
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *fakeVideoRepo) ListPublicByTag(_ context.Context, tagID uint64, offset, limit int) ([]model.Video, int64, error) {
	all := r.publicBy(func(v *model.Video) bool {
		for _, id := range v.TagIDs() {
			if id == tagID {
				return true
			}
		}
		return false
	})
	return paginate(all, offset, limit), int64(len(all)), nil
}

func (r *fakeVideoRepo) FindPublicByTags(_ context.Context, _ []uint64, _ string, limit int) ([]model.Video, error) {
	if r.byTagsErr != nil {
		return nil, r.byTagsErr
	}
	return paginate(r.byTags, 0, limit), nil
}

func (r *fakeVideoRepo) FindPublicByAuthor(_ context.Context, _ uint64, excludeIDs []string, limit int) ([]model.Video, error) {
	r.ownerLimit = limit
	r.ownerIgnore = excludeIDs
	return paginate(r.byOwner, 0, limit), nil
}

func (r *fakeVideoRepo) Search(_ context.Context, q repository.SearchQuery) ([]model.Video, int64, error) {
	all := r.publicBy(func(v *model.Video) bool {
		return strings.Contains(strings.ToLower(v.Title), strings.ToLower(q.Keyword))
	})
	return paginate(all, q.Offset, q.Limit), int64(len(all)), nil
}

func (r *fakeVideoRepo) GetVideoCache(_ context.Context, videoID string) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache[videoID], nil
}

func (r *fakeVideoRepo) SetVideoCache(_ context.Context, video *model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[video.ID] = video
	return nil
}

func (r *fakeVideoRepo) cached(videoID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.cache[videoID]
	return ok
}

func (r *fakeVideoRepo) DeleteVideoCache(_ context.Context, videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, videoID)
	return nil
}

func (r *fakeVideoRepo) WithTx(*gorm.DB) repository.VideoRepository { return r }

type likeKey struct {
	userID  uint64
	videoID string
}

type fakeLikeRepo struct {
	mu     sync.Mutex
	rows   map[likeKey]*model.Like
	nextID uint64
	// 模拟另一个请求抢先插入
	raceOnCreate bool
	// 同上，但当前事务被 InnoDB 判为死锁回滚
	deadlockOnCreate bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{rows: map[likeKey]*model.Like{}}
}

func (r *fakeLikeRepo) FindForUpdate(ctx context.Context, userID uint64, videoID string) (*model.Like, error) {
	return r.FindByUserAndVideo(ctx, userID, videoID)
}

func (r *fakeLikeRepo) FindByUserAndVideo(_ context.Context, userID uint64, videoID string) (*model.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	like, ok := r.rows[likeKey{userID, videoID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *like
	return &cp, nil
}

func (r *fakeLikeRepo) Create(_ context.Context, like *model.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := likeKey{like.UserID, like.VideoID}
	if r.raceOnCreate || r.deadlockOnCreate {
		r.nextID++
		r.rows[k] = &model.Like{BaseModel: model.BaseModel{ID: r.nextID}, UserID: like.UserID, VideoID: like.VideoID, IsLike: true}
	}
	if r.deadlockOnCreate {
		r.deadlockOnCreate = false
		return &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
	}
	r.raceOnCreate = false
	if _, ok := r.rows[k]; ok {
		return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	}
	r.nextID++
	like.ID = r.nextID
	cp := *like
	r.rows[k] = &cp
	return nil
}

func (r *fakeLikeRepo) SetIsLike(_ context.Context, likeID uint64, isLike bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, like := range r.rows {
		if like.ID == likeID {
			like.IsLike = isLike
		}
	}
	return nil
}

func (r *fakeLikeRepo) Delete(_ context.Context, likeID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, like := range r.rows {
		if like.ID == likeID {
			delete(r.rows, k)
		}
	}
	return nil
}

func (r *fakeLikeRepo) CountLikes(_ context.Context, videoID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, like := range r.rows {
		if k.videoID == videoID && like.IsLike {
			n++
		}
	}
	return n, nil
}

func (r *fakeLikeRepo) WithTx(*gorm.DB) repository.LikeRepository { return r }

// seed 直接写一行，用来构造点踩状态
func (r *fakeLikeRepo) seed(userID uint64, videoID string, isLike bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.rows[likeKey{userID, videoID}] = &model.Like{BaseModel: model.BaseModel{ID: r.nextID}, UserID: userID, VideoID: videoID, IsLike: isLike}
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[uint64]*model.Comment
	nextID   uint64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint64]*model.Comment{}}
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	comment.ID = r.nextID
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, commentID uint64) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[commentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) replyCount(parentID uint64) int64 {
	var n int64
	for _, c := range r.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			n++
		}
	}
	return n
}

func (r *fakeCommentRepo) ListTopLevel(_ context.Context, videoID string, offset, limit int) ([]model.Comment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var top []model.Comment
	for _, c := range r.comments {
		if c.VideoID == videoID && c.ParentID == nil {
			cp := *c
			cp.ReplyCount = r.replyCount(c.ID)
			top = append(top, cp)
		}
	}
	sort.Slice(top, func(i, j int) bool { return top[i].ID > top[j].ID })
	total := int64(len(top))
	if offset >= len(top) {
		return []model.Comment{}, total, nil
	}
	end := offset + limit
	if end > len(top) {
		end = len(top)
	}
	return top[offset:end], total, nil
}

func (r *fakeCommentRepo) ListReplies(_ context.Context, parentID uint64) ([]model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var replies []model.Comment
	for _, c := range r.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			replies = append(replies, *c)
		}
	}
	sort.Slice(replies, func(i, j int) bool { return replies[i].ID < replies[j].ID })
	return replies, nil
}

func (r *fakeCommentRepo) DeleteWithReplies(_ context.Context, commentID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[commentID]; !ok {
		return 0, gorm.ErrRecordNotFound
	}
	var n int64
	for id, c := range r.comments {
		if c.ParentID != nil && *c.ParentID == commentID {
			delete(r.comments, id)
			n++
		}
	}
	delete(r.comments, commentID)
	return n + 1, nil
}

func (r *fakeCommentRepo) CountByVideo(_ context.Context, videoID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.comments {
		if c.VideoID == videoID {
			n++
		}
	}
	return n, nil
}

func (r *fakeCommentRepo) WithTx(*gorm.DB) repository.CommentRepository { return r }

type fakeViewRepo struct {
	mu   sync.Mutex
	rows []model.View
}

func (r *fakeViewRepo) Create(_ context.Context, view *model.View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *view)
	return nil
}

func (r *fakeViewRepo) GetOrCreate(_ context.Context, userID uint64, videoID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.rows {
		if v.UserID != nil && *v.UserID == userID && v.VideoID == videoID {
			return false, nil
		}
	}
	uid := userID
	r.rows = append(r.rows, model.View{UserID: &uid, VideoID: videoID})
	return true, nil
}

func (r *fakeViewRepo) CountByVideo(_ context.Context, videoID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, v := range r.rows {
		if v.VideoID == videoID {
			n++
		}
	}
	return n, nil
}

type fakeSessionStore struct {
	sets    map[string][]string
	loadErr error
}

func (s *fakeSessionStore) Viewed(_ context.Context, sessionID string) ([]string, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.sets[sessionID], nil
}

func (s *fakeSessionStore) Save(_ context.Context, sessionID string, videoIDs []string) error {
	if s.sets == nil {
		s.sets = map[string][]string{}
	}
	s.sets[sessionID] = append(s.sets[sessionID], videoIDs...)
	return nil
}

type followKey struct {
	userID, followerID uint64
}

type fakeFollowRepo struct {
	follows map[followKey]bool
	err     error
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: map[followKey]bool{}}
}

func (r *fakeFollowRepo) Create(_ context.Context, userID, followerID uint64) error {
	r.follows[followKey{userID, followerID}] = true
	return nil
}

func (r *fakeFollowRepo) Delete(_ context.Context, userID, followerID uint64) error {
	delete(r.follows, followKey{userID, followerID})
	return nil
}

func (r *fakeFollowRepo) IsFollower(_ context.Context, userID, followerID uint64) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	return r.follows[followKey{userID, followerID}], nil
}

func (r *fakeFollowRepo) CountFollowers(_ context.Context, userID uint64) (int64, error) {
	var n int64
	for k := range r.follows {
		if k.userID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeFollowRepo) CountFollowing(_ context.Context, followerID uint64) (int64, error) {
	var n int64
	for k := range r.follows {
		if k.followerID == followerID {
			n++
		}
	}
	return n, nil
}

type fakeTagRepo struct {
	tags   map[string]model.Tag
	nextID uint64
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: map[string]model.Tag{}}
}

func (r *fakeTagRepo) GetOrCreateByNames(_ context.Context, names []string) ([]model.Tag, error) {
	out := make([]model.Tag, 0, len(names))
	for _, n := range names {
		t, ok := r.tags[n]
		if !ok {
			r.nextID++
			t = model.Tag{ID: r.nextID, Name: n}
			t.EnsureSlug()
			r.tags[n] = t
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTagRepo) FindBySlug(_ context.Context, slug string) (*model.Tag, error) {
	for _, t := range r.tags {
		if t.Slug == slug {
			cp := t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) WithTx(*gorm.DB) repository.TagRepository { return r }

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint64]*model.User{}}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return &mysql.MySQLError{Number: 1062}
		}
	}
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, userID uint64) (*model.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateFields(_ context.Context, userID uint64, fields map[string]any) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "bio":
			u.Bio = v.(string)
		case "website":
			u.Website = v.(string)
		case "profile_pic_key":
			u.ProfilePicKey = v.(string)
		}
	}
	return nil
}

func (r *fakeUserRepo) WithTx(*gorm.DB) repository.UserRepository { return r }

// fakeUnitOfWork 不做回滚，直接把内存 Repository 交给业务函数
type fakeUnitOfWork struct {
	repos *data.TransactionalRepositories
	err   error
}

func (u *fakeUnitOfWork) Execute(_ context.Context, fn func(repos *data.TransactionalRepositories) error) error {
	if u.err != nil {
		return u.err
	}
	return fn(u.repos)
}

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string]bool
	deleted []string
	putErr  map[string]error
	// 按完整 key 注入删除错误
	deleteErr map[string]error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string]bool{}, putErr: map[string]error{}, deleteErr: map[string]error{}}
}

func (s *fakeBlobStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := strings.SplitN(key, "/", 2)[0]
	if err := s.putErr[prefix]; err != nil {
		return err
	}
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	s.objects[key] = true
	return nil
}

func (s *fakeBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteErr[key]; err != nil {
		return err
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeBlobStore) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://blob.local/" + key, nil
}

type scheduled struct {
	reason string
	keys   []string
}

type fakeCleaner struct {
	calls []scheduled
}

func (c *fakeCleaner) Schedule(_ context.Context, reason string, keys ...string) {
	keys = compactKeys(keys)
	if len(keys) == 0 {
		return
	}
	c.calls = append(c.calls, scheduled{reason: reason, keys: keys})
}
