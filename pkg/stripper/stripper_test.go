package stripper

import (
	"io"
	"log"
	"reflect"
	"testing"

	"github.com/yleoer/lyric/pkg/model"
	"github.com/yleoer/lyric/pkg/rulecache"
)

func newTestStripper() *Stripper {
	return New(rulecache.New(), log.New(io.Discard, "", 0))
}

func createTestLines(texts []string) []*model.LyricLine {
	lines := make([]*model.LyricLine, 0, len(texts))
	for i, text := range texts {
		start := int64(i) * 1000
		lines = append(lines, model.NewTextLine(start, start+1000, text))
	}
	return lines
}

func linesToTexts(lines []*model.LyricLine) []string {
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, line.MainText())
	}
	return texts
}

func TestStripperDisabled(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"Artist: Me", "Lyric line"})
	opts := Options{Enabled: false, Keywords: []string{"Artist"}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Artist: Me", "Lyric line"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Strip with disabled flag changed lines: got %v, want %v", got, want)
	}
}

func TestStripHeaderKeywordsBasic(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"Artist: A", "Album: B", "Lyric 1", "Lyric 2"})
	opts := Options{Enabled: true, Keywords: []string{"Artist", "Album"}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1", "Lyric 2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestKeywordCaseInsensitivity(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"artist: A", "Lyric 1"})
	opts := Options{Enabled: true, Keywords: []string{"Artist"}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestKeywordCaseSensitiveFlag(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"artist: A", "Lyric 1"})
	opts := Options{Enabled: true, KeywordCaseSensitive: true, Keywords: []string{"Artist"}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"artist: A", "Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestKeywordWithoutColonNotMatched(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"Artist of the year", "Lyric 1"})
	opts := Options{Enabled: true, Keywords: []string{"Artist"}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Artist of the year", "Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("keyword without colon must not match: got %v, want %v", got, want)
	}
}

func TestKeywordsWithLRCTagsAndWhitespace(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"[ti:Title]", "[00:01.00] Artist : A", "Lyric 1"})
	opts := Options{Enabled: true, Keywords: []string{"ti", "Artist"}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestKeywordsWithParenWrapping(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"(作曲：某人)", "Lyric 1"})
	opts := Options{Enabled: true, Keywords: []string{"作曲"}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestKeywordsWithFullWidthColon(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"作曲：某人", "Lyric 1"})
	opts := Options{Enabled: true, Keywords: []string{"作曲"}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRegexCaseSensitivity(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"NOTE: important", "note: less important", "Lyric 1"})
	opts := Options{
		Enabled:            true,
		EnableRegex:        true,
		RegexCaseSensitive: true,
		RegexPatterns:      []string{`^NOTE:`},
	}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"note: less important", "Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRegexCaseInsensitiveDefault(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"NOTE: important", "note: less important", "Lyric 1"})
	opts := Options{Enabled: true, EnableRegex: true, RegexPatterns: []string{`^NOTE:`}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMalformedRegexDropped(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"NOTE: x", "Lyric 1"})
	opts := Options{
		Enabled:       true,
		EnableRegex:   true,
		RegexPatterns: []string{`([unclosed`, `^NOTE:`},
	}

	// 非法正则被丢弃，合法规则照常生效
	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHeaderTakesLastMatch(t *testing.T) {
	s := newTestStripper()
	// 夹在两个元数据行之间的普通行也应被裁掉
	lines := createTestLines([]string{"Artist: A", "sandwiched", "Album: B", "Lyric 1"})
	opts := Options{Enabled: true, Keywords: []string{"Artist", "Album"}}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFooterStripping(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"Lyric 1", "Lyric 2", "Source: Web", "Uploader: Me"})
	opts := Options{
		Enabled:  true,
		Keywords: []string{"Source", "Uploader"},
		// 头部窗口不触及尾部区域，否则按全有或全无策略整篇清空
		HeaderScanLimit: ScanLimit{Mode: ScanFixed, Lines: 2},
	}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1", "Lyric 2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInteriorLinesUntouched(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"Lyric 1", "Artist: quoted in lyric", "Lyric 2"})
	opts := Options{
		Enabled:         true,
		Keywords:        []string{"Artist"},
		HeaderScanLimit: ScanLimit{Mode: ScanFixed, Lines: 1},
		FooterScanLimit: ScanLimit{Mode: ScanFixed, Lines: 1},
	}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"Lyric 1", "Artist: quoted in lyric", "Lyric 2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("interior lines must not be stripped: got %v, want %v", got, want)
	}
}

func TestAllLinesAreMetadata(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"Artist: A", "Album: B", "Source: Web"})
	opts := Options{Enabled: true, Keywords: []string{"Artist", "Album", "Source"}}

	got := s.Strip(lines, opts)
	if len(got) != 0 {
		t.Errorf("expected all lines stripped, got %v", linesToTexts(got))
	}
}

func TestEmptyInput(t *testing.T) {
	s := newTestStripper()
	got := s.Strip(nil, Options{Enabled: true, Keywords: []string{"Artist"}})
	if len(got) != 0 {
		t.Errorf("expected empty output for empty input, got %d lines", len(got))
	}
}

func TestDefaultRulesFallback(t *testing.T) {
	s := newTestStripper()
	lines := createTestLines([]string{"作词 : 某某", "作曲 : 某某", "真正的歌词"})
	opts := Options{Enabled: true, EnableRegex: true}

	got := linesToTexts(s.Strip(lines, opts))
	want := []string{"真正的歌词"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("built-in default rules should strip credit lines: got %v, want %v", got, want)
	}
}

func TestStrippingIdempotent(t *testing.T) {
	s := newTestStripper()
	opts := Options{
		Enabled:         true,
		Keywords:        []string{"Artist", "Source"},
		HeaderScanLimit: ScanLimit{Mode: ScanFixed, Lines: 1},
	}

	once := s.Strip(createTestLines([]string{"Artist: A", "Lyric 1", "Lyric 2", "Source: Web"}), opts)
	want := []string{"Lyric 1", "Lyric 2"}
	if !reflect.DeepEqual(linesToTexts(once), want) {
		t.Fatalf("first strip: got %v, want %v", linesToTexts(once), want)
	}

	twice := s.Strip(once, opts)
	if !reflect.DeepEqual(linesToTexts(once), linesToTexts(twice)) {
		t.Errorf("stripping is not idempotent: once %v, twice %v", linesToTexts(once), linesToTexts(twice))
	}
}

func TestScanLimitCalculate(t *testing.T) {
	tests := []struct {
		name  string
		limit ScanLimit
		total int
		want  int
	}{
		{"zero value scans all", ScanLimit{}, 10, 10},
		{"fixed within total", ScanLimit{Mode: ScanFixed, Lines: 3}, 10, 3},
		{"fixed beyond total", ScanLimit{Mode: ScanFixed, Lines: 30}, 10, 10},
		{"fixed negative", ScanLimit{Mode: ScanFixed, Lines: -1}, 10, 0},
		{"fraction half", ScanLimit{Mode: ScanFraction, Fraction: 0.5}, 10, 5},
		{"fraction rounds up", ScanLimit{Mode: ScanFraction, Fraction: 0.25}, 10, 3},
		{"fraction full", ScanLimit{Mode: ScanFraction, Fraction: 1.0}, 10, 10},
		{"fraction zero", ScanLimit{Mode: ScanFraction, Fraction: 0}, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.limit.Calculate(tt.total); got != tt.want {
				t.Errorf("Calculate(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestNormalizeForKeywordCheck(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[ti:Title]", "ti:Title"},
		{"[00:01.00] Artist : A", "Artist : A"},
		{"(和声) 作曲：某人", "作曲：某人"},
		{"(整行包裹)", "整行包裹"},
		{"普通歌词", "普通歌词"},
	}
	for _, tt := range tests {
		if got := normalizeForKeywordCheck(tt.in); got != tt.want {
			t.Errorf("normalizeForKeywordCheck(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
