package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Snapora/internal/data"
	"Snapora/internal/errs"
	"Snapora/internal/model"
)

func newCommentFixture(videos ...*model.Video) (CommentService, *fakeCommentRepo) {
	videoRepo := newFakeVideoRepo(videos...)
	commentRepo := newFakeCommentRepo()
	uow := &fakeUnitOfWork{repos: &data.TransactionalRepositories{CommentRepo: commentRepo}}
	return NewCommentService(commentRepo, videoRepo, NewAccessService(newFakeFollowRepo()), uow), commentRepo
}

func TestAddComment(t *testing.T) {
	svc, _ := newCommentFixture(publicVideo("v1", 1), publicVideo("v2", 1),
		&model.Video{ID: "p", AuthorID: 1, Visibility: model.VisibilityPrivate})
	ctx := context.Background()

	top, err := svc.AddComment(ctx, 2, "v1", "  nice  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "nice", top.Text)
	assert.False(t, top.IsReply())

	reply, err := svc.AddComment(ctx, 3, "v1", "agree", &top.ID)
	require.NoError(t, err)
	assert.True(t, reply.IsReply())

	testCases := []struct {
		name     string
		videoID  string
		text     string
		parentID *uint64
		wantKind errs.Kind
	}{
		{name: "内容为空", videoID: "v1", text: "   ", wantKind: errs.KindValidation},
		{name: "视频不存在", videoID: "missing", text: "hi", wantKind: errs.KindNotFound},
		{name: "看不到的视频不能评论", videoID: "p", text: "hi", wantKind: errs.KindForbidden},
		{name: "不能回复二级评论", videoID: "v1", text: "hi", parentID: &reply.ID, wantKind: errs.KindValidation},
		{name: "父评论属于别的视频", videoID: "v2", text: "hi", parentID: &top.ID, wantKind: errs.KindValidation},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddComment(ctx, 2, tc.videoID, tc.text, tc.parentID)
			assert.True(t, errs.Is(err, tc.wantKind), "got %v", err)
		})
	}
}

func TestDeleteComment_CascadesToReplies(t *testing.T) {
	svc, repo := newCommentFixture(publicVideo("v1", 1))
	ctx := context.Background()

	first, err := svc.AddComment(ctx, 2, "v1", "first", nil)
	require.NoError(t, err)
	second, err := svc.AddComment(ctx, 3, "v1", "second", nil)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = svc.AddComment(ctx, 4, "v1", "reply to first", &first.ID)
		require.NoError(t, err)
	}
	_, err = svc.AddComment(ctx, 4, "v1", "reply to second", &second.ID)
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, 3, first.ID)
	assert.True(t, errs.Is(err, errs.KindForbidden), "只能删除自己的评论")

	require.NoError(t, svc.DeleteComment(ctx, 2, first.ID))
	assert.Len(t, repo.comments, 2)

	page, err := svc.ListComments(ctx, Anonymous, "v1", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, second.ID, page.Comments[0].ID)
	assert.Equal(t, int64(1), page.Comments[0].ReplyCount)

	err = svc.DeleteComment(ctx, 2, first.ID)
	assert.True(t, errs.Is(err, errs.KindNotFound))
}

func TestListComments_NewestFirstWithReplyCount(t *testing.T) {
	svc, _ := newCommentFixture(publicVideo("v1", 1))
	ctx := context.Background()

	var created []uint64
	for i := 0; i < 3; i++ {
		c, err := svc.AddComment(ctx, 2, "v1", "c", nil)
		require.NoError(t, err)
		created = append(created, c.ID)
	}
	_, err := svc.AddComment(ctx, 3, "v1", "r", &created[0])
	require.NoError(t, err)

	page, err := svc.ListComments(ctx, 2, "v1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, DefaultCommentPageSize, page.PageSize)
	assert.Equal(t, created[2], page.Comments[0].ID)
	assert.Equal(t, created[0], page.Comments[2].ID)
	assert.Equal(t, int64(1), page.Comments[2].ReplyCount)

	replies, err := svc.ListReplies(ctx, Anonymous, created[0])
	require.NoError(t, err)
	assert.Len(t, replies, 1)
}
