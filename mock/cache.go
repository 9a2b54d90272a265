package mock

import "github.com/fwojciec/filechat"

var _ filechat.Cache = (*Cache)(nil)

// Cache is an in-memory implementation of filechat.Cache. SetErr, when set,
// is returned by Set and Clear without modifying the mapping.
type Cache struct {
	Data   filechat.Entries
	SetErr error
	Loads  int
}

func (c *Cache) Load() error {
	c.Loads++
	if c.Data == nil {
		c.Data = filechat.Entries{}
	}
	return nil
}

func (c *Cache) String(key filechat.CacheKey) (string, bool) {
	return c.Data.String(key)
}

func (c *Cache) Bool(key filechat.CacheKey) bool {
	return c.Data.Bool(key)
}

func (c *Cache) Set(key filechat.CacheKey, value any) error {
	if c.SetErr != nil {
		return c.SetErr
	}
	if c.Data == nil {
		c.Data = filechat.Entries{}
	}
	c.Data[string(key)] = value
	return nil
}

func (c *Cache) Clear() error {
	if c.SetErr != nil {
		return c.SetErr
	}
	c.Data = filechat.Entries{}
	return nil
}

func (c *Cache) Entries() map[string]any {
	return c.Data.Clone()
}
