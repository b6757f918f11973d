package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Snapora/internal/errs"
	"Snapora/internal/model"
	"Snapora/internal/repository"
)

func TestSearch(t *testing.T) {
	repo := newFakeVideoRepo()
	for i := 0; i < 14; i++ {
		v := videoAt(string(rune('a'+i)), 1, i)
		v.Title = "Dance " + v.ID
		repo.videos[v.ID] = &v
	}
	hidden := &model.Video{ID: "hidden", Title: "dance secret", Visibility: model.VisibilityPrivate}
	repo.videos[hidden.ID] = hidden
	svc := NewSearchService(repo)
	ctx := context.Background()

	first, err := svc.Search(ctx, " dance ", "", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(14), first.Total)
	assert.Len(t, first.Videos, SearchPageSize)
	assert.Equal(t, 1, first.Page)
	for _, v := range first.Videos {
		assert.Equal(t, model.VisibilityPublic, v.Visibility)
	}

	second, err := svc.Search(ctx, "dance", repository.SortMostLikes, 2)
	require.NoError(t, err)
	assert.Len(t, second.Videos, 2)

	last, err := svc.Search(ctx, "dance", repository.SortNewest, int(^uint(0)>>1))
	require.NoError(t, err)
	assert.Equal(t, MaxPage, last.Page)
	assert.Empty(t, last.Videos)
	assert.False(t, last.HasNext())

	_, err = svc.Search(ctx, "dance", "random", 1)
	assert.True(t, errs.Is(err, errs.KindValidation))
}

func TestIsValidSort(t *testing.T) {
	for _, s := range []string{"newest", "oldest", "most_viewed", "most_likes"} {
		assert.True(t, IsValidSort(s), s)
	}
	assert.False(t, IsValidSort("popular"))
}
