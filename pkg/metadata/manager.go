// Package metadata 管理歌词文档的元数据条目
// 条目以会话内稳定的 ID 标识，支持固定（pinned）条目在重新加载时保留
package metadata

import (
	"log"
	"sort"

	"github.com/yleoer/lyric/pkg/model"
)

// Entry 是一条元数据
// 同一个键允许出现多条（例如多位艺术家），分组展示由 Grouped 负责
type Entry struct {
	ID     int
	Key    model.CanonicalMetadataKey
	Value  string
	Pinned bool
}

// Manager 维护工作集中的元数据条目
type Manager struct {
	entries []Entry
	nextID  int
	logger  *log.Logger
}

// New 创建空的元数据管理器
func New(logger *log.Logger) *Manager {
	return &Manager{nextID: 1, logger: logger}
}

// Load 把新解析出的元数据合并进工作集
// 固定条目全部保留且取值不被新来源覆盖；未固定条目被替换或移除
// 新来源中与固定条目同键的值不再重复加入
func (m *Manager) Load(parsed model.Metadata) {
	var kept []Entry
	pinnedKeys := make(map[model.CanonicalMetadataKey]bool)
	for _, e := range m.entries {
		if e.Pinned {
			kept = append(kept, e)
			pinnedKeys[e.Key] = true
		}
	}

	// 按键名排序遍历，保证相同输入得到相同的条目顺序
	keys := make([]string, 0, len(parsed))
	for k := range parsed {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		key := model.CanonicalMetadataKey(k)
		if pinnedKeys[key] {
			continue
		}
		for _, value := range parsed[key] {
			kept = append(kept, Entry{ID: m.nextID, Key: key, Value: value})
			m.nextID++
		}
	}
	m.entries = kept
}

// Entries 返回当前条目的副本，保持存储顺序
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Grouped 返回分组视图：同键条目聚拢相邻
// 键按首次出现顺序排列，组内保持存储顺序，存储本身不被改动
func (m *Manager) Grouped() []Entry {
	var keyOrder []model.CanonicalMetadataKey
	byKey := make(map[model.CanonicalMetadataKey][]Entry)
	for _, e := range m.entries {
		if _, seen := byKey[e.Key]; !seen {
			keyOrder = append(keyOrder, e.Key)
		}
		byKey[e.Key] = append(byKey[e.Key], e)
	}
	out := make([]Entry, 0, len(m.entries))
	for _, k := range keyOrder {
		out = append(out, byKey[k]...)
	}
	return out
}

// Add 追加一条新条目并返回它
func (m *Manager) Add(key model.CanonicalMetadataKey, value string) Entry {
	e := Entry{ID: m.nextID, Key: key, Value: value}
	m.nextID++
	m.entries = append(m.entries, e)
	return e
}

// Delete 按 ID 删除条目
func (m *Manager) Delete(id int) bool {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true
		}
	}
	return false
}

// TogglePinned 切换条目的固定状态
func (m *Manager) TogglePinned(id int) bool {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Pinned = !m.entries[i].Pinned
			return true
		}
	}
	return false
}

// UpdateValue 更新条目取值
func (m *Manager) UpdateValue(id int, value string) bool {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Value = value
			return true
		}
	}
	return false
}

// UpdateKey 用规范键解析器校验并更新条目的键
// 已知别名归一化为规范键；无法解析的字符串按自定义键原样保留，不做静默纠正
func (m *Manager) UpdateKey(id int, raw string) bool {
	for i := range m.entries {
		if m.entries[i].ID == id {
			key, ok := model.ParseKey(raw)
			if !ok {
				m.logger.Printf("[Metadata] key %q is not canonical, kept as custom key", raw)
			}
			m.entries[i].Key = key
			return true
		}
	}
	return false
}

// Export 把工作集导出为序列化用的元数据映射，保持存储顺序
func (m *Manager) Export() model.Metadata {
	out := model.Metadata{}
	for _, e := range m.entries {
		out.Add(e.Key, e.Value)
	}
	return out
}
