package fonts

import (
	"encoding/base64"
	"sort"
	"sync"
)

// Payload is the binary of one font file.
type Payload struct {
	URL  string
	Data []byte
}

// Base64 encodes the binary for embedding in JSON or data URLs.
func (p Payload) Base64() string {
	return base64.StdEncoding.EncodeToString(p.Data)
}

// Cache maps a font URL to its binary. It is shared by every document the
// process renders and can be seeded ahead of time.
type Cache struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewCache() *Cache {
	return &Cache{data: make(map[string][]byte)}
}

func (c *Cache) Get(url string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.data[url]
	return b, ok
}

func (c *Cache) Put(url string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[url] = data
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// URLs lists the cached URLs in lexical order.
func (c *Cache) URLs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	urls := make([]string, 0, len(c.data))
	for u := range c.data {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}
