package model

import "strings"

// CanonicalMetadataKey 是元数据的规范键
// 已知键使用固定取值，未知键以原样字符串保留（自定义键）
// 底层为字符串，可稳定地用作 map 的键
type CanonicalMetadataKey string

const (
	KeyTitle    CanonicalMetadataKey = "title"
	KeyArtist   CanonicalMetadataKey = "artist"
	KeyAlbum    CanonicalMetadataKey = "album"
	KeyAuthor   CanonicalMetadataKey = "author"
	KeyLyricist CanonicalMetadataKey = "lyricist"
	KeyComposer CanonicalMetadataKey = "composer"
	KeyArranger CanonicalMetadataKey = "arranger"
	KeyLanguage CanonicalMetadataKey = "language"
	KeyOffset   CanonicalMetadataKey = "offset"
)

// wellKnownKeys 把各家格式使用的别名映射到规范键
// LRC 标签（ti/ar/al/by）与常见英文全称都在其中
var wellKnownKeys = map[string]CanonicalMetadataKey{
	"ti":       KeyTitle,
	"title":    KeyTitle,
	"ar":       KeyArtist,
	"artist":   KeyArtist,
	"al":       KeyAlbum,
	"album":    KeyAlbum,
	"by":       KeyAuthor,
	"author":   KeyAuthor,
	"lyricist": KeyLyricist,
	"composer": KeyComposer,
	"arranger": KeyArranger,
	"language": KeyLanguage,
	"lang":     KeyLanguage,
	"offset":   KeyOffset,
}

// ParseKey 把任意字符串解析为规范键
// 已知别名归一化为规范键；其余保留原文作为自定义键，ok 返回 false
func ParseKey(raw string) (key CanonicalMetadataKey, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if k, found := wellKnownKeys[strings.ToLower(trimmed)]; found {
		return k, true
	}
	return CanonicalMetadataKey(trimmed), false
}

// IsCanonical 报告该键是否为已知的规范键
func (k CanonicalMetadataKey) IsCanonical() bool {
	_, ok := wellKnownKeys[string(k)]
	return ok
}

// Metadata 是规范键到取值列表的映射，同一键允许多个值（如多位艺术家）
type Metadata map[CanonicalMetadataKey][]string

// Add 追加一个键值对
func (m Metadata) Add(key CanonicalMetadataKey, value string) {
	m[key] = append(m[key], value)
}
