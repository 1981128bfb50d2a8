package format

import (
	"strings"
	"unicode"

	"github.com/yleoer/lyric/pkg/model"
)

// metadataTag 尝试把方括号内容解析为元数据标签
// 键必须以字母开头，避免把无法解析的时间戳（如 [00:99.00]）误判为元数据
func metadataTag(tag string) (model.CanonicalMetadataKey, string, bool) {
	key, value, found := strings.Cut(tag, ":")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	if r := []rune(key)[0]; !unicode.IsLetter(r) {
		return "", "", false
	}
	k, _ := model.ParseKey(key)
	return k, strings.TrimSpace(value), true
}
