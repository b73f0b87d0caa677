package utils

import (
	"os"
	"sync"
	"time"
)

// fileStamp records the state of the file a cached value was derived from
type fileStamp struct {
	modTime time.Time
	size    int64
}

type fileCacheItem[V any] struct {
	value V
	stamp fileStamp
}

// FileCache caches values derived from files. An entry is dropped as soon as
// its file changes size or modification time.
type FileCache[V any] struct {
	items map[string]*fileCacheItem[V]
	mutex sync.RWMutex
}

// NewFileCache creates an empty file cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{
		items: make(map[string]*fileCacheItem[V]),
	}
}

// Get returns the value cached for path if the file is unchanged
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mutex.RLock()
	item, exists := c.items[path]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	if stat, err := os.Stat(path); err == nil {
		if stat.ModTime().Equal(item.stamp.modTime) && stat.Size() == item.stamp.size {
			return item.value, true
		}
	}

	c.mutex.Lock()
	delete(c.items, path)
	c.mutex.Unlock()
	return zero, false
}

// Set caches value for path, stamped with the current file state
func (c *FileCache[V]) Set(path string, value V) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items[path] = &fileCacheItem[V]{
		value: value,
		stamp: fileStamp{modTime: stat.ModTime(), size: stat.Size()},
	}
	return nil
}

// Size returns the number of cached entries
func (c *FileCache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}
