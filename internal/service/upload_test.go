package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"Snapora/internal/errs"
	"Snapora/internal/model"
)

func TestValidateVideoFile(t *testing.T) {
	testCases := []struct {
		name    string
		file    *FileInput
		wantErr bool
	}{
		{name: "没有文件", file: nil, wantErr: true},
		{name: "mp4", file: &FileInput{Name: "a.mp4", Size: 1024}},
		{name: "大写扩展名", file: &FileInput{Name: "a.MKV", Size: 1024}},
		{name: "不支持的格式", file: &FileInput{Name: "a.flv", Size: 1024}, wantErr: true},
		{name: "没有扩展名", file: &FileInput{Name: "video", Size: 1024}, wantErr: true},
		{name: "正好500MB", file: &FileInput{Name: "a.mov", Size: DefaultMaxVideoBytes}},
		{name: "超过500MB", file: &FileInput{Name: "a.mov", Size: DefaultMaxVideoBytes + 1}, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateVideoFile(tc.file, DefaultMaxVideoBytes)
			if tc.wantErr {
				assert.True(t, errs.Is(err, errs.KindValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateImageFile(t *testing.T) {
	assert.NoError(t, validateImageFile(nil))
	assert.NoError(t, validateImageFile(&FileInput{Name: "cover.WEBP", Size: 10}))
	assert.True(t, errs.Is(validateImageFile(&FileInput{Name: "cover.gif", Size: 10}), errs.KindValidation))
	assert.True(t, errs.Is(validateImageFile(&FileInput{Name: "cover.png", Size: maxImageBytes + 1}), errs.KindValidation))
}

func TestNormalizeTitleAndVisibility(t *testing.T) {
	title, err := normalizeTitle("  hello  ")
	assert.NoError(t, err)
	assert.Equal(t, "hello", title)

	_, err = normalizeTitle("   ")
	assert.True(t, errs.Is(err, errs.KindValidation))
	_, err = normalizeTitle(strings.Repeat("长", 101))
	assert.True(t, errs.Is(err, errs.KindValidation))
	_, err = normalizeTitle(strings.Repeat("长", 100))
	assert.NoError(t, err)

	v, err := normalizeVisibility("")
	assert.NoError(t, err)
	assert.Equal(t, model.VisibilityPublic, v)
	_, err = normalizeVisibility("friends")
	assert.True(t, errs.Is(err, errs.KindValidation))
}
