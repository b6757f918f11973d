package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "空格", in: "Street Dance", want: "street-dance"},
		{name: "标点", in: "Sci-Fi/Fantasy", want: "sci-fi-fantasy"},
		{name: "重音字符", in: "Café", want: "cafe"},
		{name: "纯中文退回原规则", in: "街舞 教学", want: "街舞-教学"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestEnsureSlug(t *testing.T) {
	tag := Tag{Name: "music"}
	tag.EnsureSlug()
	assert.Equal(t, "music", tag.Slug)

	tag = Tag{Name: "music", Slug: "custom"}
	tag.EnsureSlug()
	assert.Equal(t, "custom", tag.Slug)
}

func TestParseTagNames(t *testing.T) {
	assert.Equal(t, []string{"dance", "street dance", "music"},
		ParseTagNames(" Dance, street dance ,,MUSIC, dance "))
	assert.Empty(t, ParseTagNames(" , ,"))
	assert.Empty(t, ParseTagNames(""))
}
