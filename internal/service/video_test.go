package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Snapora/internal/data"
	"Snapora/internal/errs"
	"Snapora/internal/model"
)

type videoFixture struct {
	videos  *fakeVideoRepo
	tags    *fakeTagRepo
	blobs   *fakeBlobStore
	cleaner *fakeCleaner
	uow     *fakeUnitOfWork
	svc     VideoService
}

func newVideoFixture(videos ...*model.Video) *videoFixture {
	f := &videoFixture{
		videos:  newFakeVideoRepo(videos...),
		tags:    newFakeTagRepo(),
		blobs:   newFakeBlobStore(),
		cleaner: &fakeCleaner{},
	}
	f.uow = &fakeUnitOfWork{repos: &data.TransactionalRepositories{VideoRepo: f.videos, TagRepo: f.tags}}
	f.svc = NewVideoService(f.videos, f.tags, f.uow, f.blobs, f.cleaner, 0)
	return f
}

func videoFile(name string) *FileInput {
	return &FileInput{Name: name, Size: 4, ContentType: "video/mp4", Reader: strings.NewReader("data")}
}

func TestUpload(t *testing.T) {
	f := newVideoFixture()
	video, err := f.svc.Upload(context.Background(), UploadInput{
		AuthorID:  1,
		Title:     " Dance Battle ",
		Tags:      "Dance, street dance,dance",
		File:      videoFile("clip.MP4"),
		Thumbnail: &FileInput{Name: "cover.png", Size: 2, Reader: strings.NewReader("png")},
	})
	require.NoError(t, err)

	assert.Len(t, video.ID, 36)
	assert.Equal(t, "Dance Battle", video.Title)
	assert.Equal(t, model.VisibilityPublic, video.Visibility)
	assert.True(t, strings.HasPrefix(video.VideoKey, "videos/"))
	assert.True(t, strings.HasSuffix(video.VideoKey, ".mp4"))
	assert.True(t, strings.HasPrefix(video.ThumbnailKey, "thumbnails/"))
	assert.Equal(t, []string{"dance", "street dance"}, tagNames(video.Tags))
	assert.True(t, f.blobs.objects[video.VideoKey])
	assert.Contains(t, f.videos.videos, video.ID)
}

func tagNames(tags []model.Tag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}

func TestUpload_ValidationHappensBeforeStorage(t *testing.T) {
	testCases := []struct {
		name string
		in   UploadInput
	}{
		{name: "没有标题", in: UploadInput{Title: "", File: videoFile("a.mp4")}},
		{name: "不支持的格式", in: UploadInput{Title: "t", File: videoFile("a.exe")}},
		{name: "文件太大", in: UploadInput{Title: "t", File: &FileInput{Name: "a.mp4", Size: DefaultMaxVideoBytes + 1}}},
		{name: "可见范围不对", in: UploadInput{Title: "t", Visibility: "friends", File: videoFile("a.mp4")}},
		{name: "封面格式不对", in: UploadInput{Title: "t", File: videoFile("a.mp4"), Thumbnail: &FileInput{Name: "a.bmp"}}},
		{name: "没有文件", in: UploadInput{Title: "t"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newVideoFixture()
			_, err := f.svc.Upload(context.Background(), tc.in)
			assert.True(t, errs.Is(err, errs.KindValidation), "got %v", err)
			assert.Empty(t, f.blobs.objects)
			assert.Empty(t, f.videos.videos)
		})
	}
}

func TestUpload_CompensatingDelete(t *testing.T) {
	f := newVideoFixture()
	f.uow.err = errors.New("db down")

	_, err := f.svc.Upload(context.Background(), UploadInput{
		AuthorID:  1,
		Title:     "t",
		File:      videoFile("a.mp4"),
		Thumbnail: &FileInput{Name: "a.jpg", Size: 1, Reader: strings.NewReader("j")},
	})
	assert.True(t, errs.Is(err, errs.KindInternal))
	assert.Empty(t, f.blobs.objects, "数据库失败后不能留下孤儿文件")
	assert.Len(t, f.blobs.deleted, 2)
	assert.Empty(t, f.videos.videos)
}

func TestUpload_StorageFailure(t *testing.T) {
	f := newVideoFixture()
	f.blobs.putErr["thumbnails"] = errors.New("minio down")

	_, err := f.svc.Upload(context.Background(), UploadInput{
		Title:     "t",
		File:      videoFile("a.mp4"),
		Thumbnail: &FileInput{Name: "a.jpg", Size: 1, Reader: strings.NewReader("j")},
	})
	assert.True(t, errs.Is(err, errs.KindStorage))
	assert.Equal(t, "文件存储服务暂时不可用，请稍后再试", errs.PublicMessage(err))
	assert.Empty(t, f.blobs.objects)
	assert.Empty(t, f.videos.videos)
}

func TestEdit(t *testing.T) {
	existing := &model.Video{ID: "v1", AuthorID: 1, Title: "old", Visibility: model.VisibilityPublic,
		VideoKey: "videos/old.mp4", ThumbnailKey: "thumbnails/old.png"}
	f := newVideoFixture(existing)
	f.videos.cache["v1"] = existing
	ctx := context.Background()

	_, err := f.svc.Edit(ctx, EditInput{UserID: 2, VideoID: "v1", Title: "hack"})
	assert.True(t, errs.Is(err, errs.KindNotFound), "不是作者按不存在处理")

	updated, err := f.svc.Edit(ctx, EditInput{
		UserID:     1,
		VideoID:    "v1",
		Title:      "new",
		Visibility: model.VisibilityFollowers,
		Tags:       "music",
		File:       videoFile("new.webm"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, uint64(1), updated.AuthorID)
	assert.True(t, strings.HasSuffix(updated.VideoKey, ".webm"))
	assert.Equal(t, "thumbnails/old.png", updated.ThumbnailKey)
	assert.Equal(t, []string{"music"}, tagNames(f.videos.videos["v1"].Tags))
	assert.NotContains(t, f.videos.cache, "v1")

	require.Len(t, f.cleaner.calls, 1)
	assert.Equal(t, scheduled{reason: ReasonFileReplaced, keys: []string{"videos/old.mp4"}}, f.cleaner.calls[0])
}

func TestEdit_StaleCacheRefillIsCleared(t *testing.T) {
	existing := &model.Video{ID: "v1", AuthorID: 1, Title: "old", Visibility: model.VisibilityPublic}
	f := newVideoFixture(existing)
	f.svc.(*videoService).cacheDelay = 10 * time.Millisecond
	ctx := context.Background()

	stale := *existing
	_, err := f.svc.Edit(ctx, EditInput{UserID: 1, VideoID: "v1", Title: "old", Visibility: model.VisibilityPrivate})
	require.NoError(t, err)
	// 提交前读到旧行的请求在提交后才回填缓存
	require.NoError(t, f.videos.SetVideoCache(ctx, &stale))

	assert.Eventually(t, func() bool { return !f.videos.cached("v1") }, time.Second, 5*time.Millisecond)

	v, err := f.svc.GetVideoByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, model.VisibilityPrivate, v.Visibility)
}

func TestDelete(t *testing.T) {
	existing := &model.Video{ID: "v1", AuthorID: 1, Visibility: model.VisibilityPublic,
		VideoKey: "videos/a.mp4", ThumbnailKey: ""}
	f := newVideoFixture(existing)
	ctx := context.Background()

	err := f.svc.Delete(ctx, 2, "v1")
	assert.True(t, errs.Is(err, errs.KindNotFound))
	assert.Contains(t, f.videos.videos, "v1")

	require.NoError(t, f.svc.Delete(ctx, 1, "v1"))
	assert.NotContains(t, f.videos.videos, "v1")
	assert.Equal(t, []scheduled{{reason: ReasonVideoDeleted, keys: []string{"videos/a.mp4"}}}, f.cleaner.calls)

	err = f.svc.Delete(ctx, 1, "v1")
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestGetVideoByID_UsesCache(t *testing.T) {
	f := newVideoFixture(publicVideo("v1", 1))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		v, err := f.svc.GetVideoByID(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "v1", v.ID)
	}
	assert.Equal(t, 1, f.videos.findCalls)

	_, err := f.svc.GetVideoByID(ctx, "missing")
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestFeedAndTagPages(t *testing.T) {
	var videos []*model.Video
	for i := 0; i < 12; i++ {
		v := videoAt(string(rune('a'+i)), 1, i)
		v.Tags = []model.Tag{{ID: 7, Name: "music", Slug: "music"}}
		videos = append(videos, &v)
	}
	private := videoAt("z", 1, 0)
	private.Visibility = model.VisibilityPrivate
	videos = append(videos, &private)

	f := newVideoFixture(videos...)
	f.tags.tags["music"] = model.Tag{ID: 7, Name: "music", Slug: "music"}
	ctx := context.Background()

	first, err := f.svc.Feed(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12), first.Total)
	assert.Len(t, first.Videos, FeedPageSize)
	assert.Equal(t, "a", first.Videos[0].ID)
	assert.True(t, first.HasNext())

	second, err := f.svc.Feed(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Videos, 2)
	assert.False(t, second.HasNext())

	tag, byTag, err := f.svc.ListByTag(ctx, "music", 1)
	require.NoError(t, err)
	assert.Equal(t, "music", tag.Name)
	assert.Equal(t, int64(12), byTag.Total)

	_, _, err = f.svc.ListByTag(ctx, "nope", 1)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}
