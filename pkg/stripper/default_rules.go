package stripper

// 内置默认规则
// 覆盖常见中英文制作名单关键词以及平台声明类文案；
// 仅在用户未提供任何自定义规则时生效
var (
	defaultKeywords = []string{
		"作词", "作曲", "编曲", "制作人", "制作", "监制", "出品",
		"发行", "录音", "混音", "母带", "和声", "吉他", "贝斯",
		"鼓", "键盘", "弦乐", "词", "曲", "歌词",
		"lyrics by", "composed by", "arranged by", "produced by",
		"written by", "lyricist", "composer", "arranger",
	}

	defaultRegexPatterns = []string{
		`本歌词.*(仅供|纯属)`,
		`歌词贡献者`,
		`^\s*(?:纯音乐|此歌曲为没有填词的纯音乐)`,
		`(?:QQ音乐|网易云音乐).*(?:享有|版权)`,
		`^\s*unofficial\s+lyrics?`,
		`^\s*official\s+(?:audio|video|lyrics?)`,
	}
)
