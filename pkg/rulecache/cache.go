// Package rulecache 提供带缓存的正则规则编译器
// 规则编译开销较大，同一配置会被反复使用，因此按 (pattern, caseSensitive) 缓存编译结果
package rulecache

import (
	"regexp"
	"sync"
)

// Cache 定义规则编译缓存接口
// 实现必须可被多个转换任务并发调用
type Cache interface {
	// GetOrCompile 返回编译好的正则；模式非法时返回编译错误
	GetOrCompile(pattern string, caseSensitive bool) (*regexp.Regexp, error)
}

type cacheKey struct {
	pattern       string
	caseSensitive bool
}

// mutexCache 是 Cache 的默认实现：互斥锁保护的映射
// 缓存随进程生命周期单调增长，模式集合由用户配置决定，规模有界
type mutexCache struct {
	mu      sync.Mutex
	entries map[cacheKey]*regexp.Regexp
}

// New 创建一个空的规则缓存
func New() Cache {
	return &mutexCache{entries: make(map[cacheKey]*regexp.Regexp)}
}

var defaultCache = New()

// Default 返回进程级共享缓存
func Default() Cache {
	return defaultCache
}

// GetOrCompile 查找或编译正则
// 锁只覆盖查找与写入，编译在锁外进行；并发编译同一模式时后写入者直接复用先写入的结果
func (c *mutexCache) GetOrCompile(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	key := cacheKey{pattern: pattern, caseSensitive: caseSensitive}

	c.mu.Lock()
	if re, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return re, nil
	}
	c.mu.Unlock()

	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing, nil
	}
	c.entries[key] = re
	return re, nil
}
