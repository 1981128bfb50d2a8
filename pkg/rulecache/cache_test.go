package rulecache

import (
	"regexp"
	"sync"
	"testing"
)

func TestGetOrCompileMatchesFreshCompile(t *testing.T) {
	cache := New()
	pattern := `^NOTE:`

	cached, err := cache.GetOrCompile(pattern, true)
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}
	fresh := regexp.MustCompile(pattern)

	for _, input := range []string{"NOTE: x", "note: x", "prefix NOTE:"} {
		if cached.MatchString(input) != fresh.MatchString(input) {
			t.Errorf("cached matcher disagrees with fresh compile on %q", input)
		}
	}
}

func TestCaseInsensitiveCompilation(t *testing.T) {
	cache := New()
	re, err := cache.GetOrCompile(`^NOTE:`, false)
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}
	if !re.MatchString("note: x") {
		t.Error("case-insensitive matcher should match lowercase input")
	}
	if !re.MatchString("NOTE: x") {
		t.Error("case-insensitive matcher should match uppercase input")
	}
}

func TestCaseSensitivityIsPartOfKey(t *testing.T) {
	cache := New()
	sensitive, err := cache.GetOrCompile(`^NOTE:`, true)
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}
	insensitive, err := cache.GetOrCompile(`^NOTE:`, false)
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}
	if sensitive.MatchString("note: x") {
		t.Error("case-sensitive matcher must not match lowercase input")
	}
	if !insensitive.MatchString("note: x") {
		t.Error("case-insensitive matcher must match lowercase input")
	}
}

func TestCacheHitReturnsSameMatcher(t *testing.T) {
	cache := New()
	first, err := cache.GetOrCompile(`\d+`, true)
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}
	second, err := cache.GetOrCompile(`\d+`, true)
	if err != nil {
		t.Fatalf("GetOrCompile failed: %v", err)
	}
	if first != second {
		t.Error("expected cache hit to return the same compiled matcher")
	}
}

func TestMalformedPatternReturnsError(t *testing.T) {
	cache := New()
	if _, err := cache.GetOrCompile(`([unclosed`, true); err == nil {
		t.Error("expected compile error for malformed pattern")
	}
}

func TestConcurrentAccess(t *testing.T) {
	cache := New()
	patterns := []string{`^a`, `^b`, `^c`, `\d+`, `[a-z]+`}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range patterns {
				re, err := cache.GetOrCompile(p, false)
				if err != nil {
					t.Errorf("GetOrCompile(%q) failed: %v", p, err)
					return
				}
				re.MatchString("abc123")
			}
		}()
	}
	wg.Wait()
}
