package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"travel-app/models"

	"github.com/goccy/go-json"
)

// memCache là Cache trong bộ nhớ dùng cho test
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	hits    int
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(raw, target)
}

func (c *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}

func (c *memCache) DeletePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	c.deletes = append(c.deletes, prefix+"*")
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func ptr[T any](v T) *T { return &v }

func seedUser(users interface {
	Create(context.Context, *models.User) error
}, name string) *models.User {
	u := &models.User{Name: name, Email: strings.ToLower(name) + "@example.com"}
	if err := users.Create(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}
