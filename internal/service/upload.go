package service

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"Snapora/internal/errs"
	"Snapora/internal/model"
)

const (
	DefaultMaxVideoBytes int64 = 500 * 1024 * 1024
	maxTitleLen                = 100
	maxImageBytes        int64 = 10 * 1024 * 1024
)

var (
	videoExts = map[string]bool{".mp4": true, ".webm": true, ".avi": true, ".mov": true, ".mkv": true}
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
)

// FileInput 上传的文件，Reader 由调用方负责关闭
type FileInput struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

func validateVideoFile(f *FileInput, maxBytes int64) error {
	if f == nil {
		return errs.Validation("请选择要上传的视频文件")
	}
	ext := strings.ToLower(filepath.Ext(f.Name))
	if !videoExts[ext] {
		return errs.Validation("不支持的视频格式，仅支持 mp4、webm、avi、mov、mkv")
	}
	if f.Size > maxBytes {
		return errs.Validation(fmt.Sprintf("视频文件不能超过 %dMB", maxBytes/1024/1024))
	}
	return nil
}

// validateImageFile nil 表示没有上传，不算错误
func validateImageFile(f *FileInput) error {
	if f == nil {
		return nil
	}
	if !imageExts[strings.ToLower(filepath.Ext(f.Name))] {
		return errs.Validation("不支持的图片格式，仅支持 jpg、jpeg、png、webp")
	}
	if f.Size > maxImageBytes {
		return errs.Validation("图片不能超过 10MB")
	}
	return nil
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errs.Validation("标题不能为空")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", errs.Validation("标题不能超过100个字符")
	}
	return title, nil
}

// normalizeVisibility 空值默认公开
func normalizeVisibility(v string) (string, error) {
	if v == "" {
		return model.VisibilityPublic, nil
	}
	if !model.IsValidVisibility(v) {
		return "", errs.Validation("无效的可见范围")
	}
	return v, nil
}
