package locator

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCacheCapacity = 1000
	DefaultCacheTTL      = 5 * time.Minute
)

// CacheStats 缓存命中统计
type CacheStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}

// HitRatio 命中率，没有访问时为 0
func (s CacheStats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache 缓存解析结果，Locator 不可变，可以直接共享
// 解析失败的输入不缓存
type Cache struct {
	entries *expirable.LRU[string, *Locator]

	mu    sync.Mutex
	stats CacheStats
}

// NewCache 创建缓存，capacity <= 0 或 ttl <= 0 时使用默认值
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{entries: expirable.NewLRU[string, *Locator](capacity, nil, ttl)}
}

// Parse 先查缓存，未命中时解析并写入
func (c *Cache) Parse(input string) (*Locator, error) {
	if loc, ok := c.entries.Get(input); ok {
		c.record(func(s *CacheStats) { s.Hits++ })
		return loc, nil
	}

	c.record(func(s *CacheStats) { s.Misses++ })
	loc, err := Parse(input)
	if err != nil {
		return nil, err
	}

	evicted := c.entries.Add(input, loc)
	c.record(func(s *CacheStats) {
		if evicted {
			s.Evictions++
		}
	})
	return loc, nil
}

// Get 只查询，不解析也不计入统计
func (c *Cache) Get(input string) (*Locator, bool) {
	return c.entries.Peek(input)
}

func (c *Cache) Contains(input string) bool {
	return c.entries.Contains(input)
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

// Clear 清空条目，统计保留
func (c *Cache) Clear() {
	c.entries.Purge()
}

func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Size = c.entries.Len()
	return s
}

func (c *Cache) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = CacheStats{}
}

func (c *Cache) record(update func(*CacheStats)) {
	c.mu.Lock()
	update(&c.stats)
	c.mu.Unlock()
}
