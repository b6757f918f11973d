package model

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxTagNameLen 和 name 列的长度一致
const MaxTagNameLen = 50

type Tag struct {
	ID   uint64 `gorm:"primarykey"`
	Name string `gorm:"size:50;uniqueIndex;not null"`
	Slug string `gorm:"size:50;uniqueIndex;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	spaces          = regexp.MustCompile(`\s+`)
)

// NormalizeTagName 标签名统一去掉首尾空白并转小写
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Slugify "Street Dance" -> "street-dance"
// 纯非ASCII的名字(比如中文)会被清空，这时退回到"小写+空格换成-"
func Slugify(name string) string {
	s := norm.NFKD.String(name)
	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)
	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s != "" {
		return s
	}
	return spaces.ReplaceAllString(NormalizeTagName(name), "-")
}

// EnsureSlug 没有slug的时候从name推导
func (t *Tag) EnsureSlug() {
	if t.Slug == "" {
		t.Slug = Slugify(t.Name)
	}
}

// ParseTagNames 把逗号分隔的输入拆成规范化、去重后的标签名，保持输入顺序
func ParseTagNames(input string) []string {
	parts := strings.Split(input, ",")
	seen := make(map[string]struct{}, len(parts))
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		n := NormalizeTagName(p)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		names = append(names, n)
	}
	return names
}
