package template

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Context is the key/value data one render reads from. Keys keep their
// insertion order, so callers that print every entry get deterministic
// output. A nil Context behaves like an empty one for lookups.
type Context struct {
	entries *orderedmap.OrderedMap[string, Value]
}

// NewContext returns an empty context
func NewContext() *Context {
	return &Context{entries: orderedmap.New[string, Value]()}
}

// Set stores value under key, keeping the key's original position when it
// already exists
func (c *Context) Set(key string, value Value) {
	c.entries.Set(key, value)
}

// Lookup returns the value stored under key
func (c *Context) Lookup(key string) (Value, bool) {
	if c == nil || c.entries == nil {
		return Value{}, false
	}
	return c.entries.Get(key)
}

// Contains reports whether key is present
func (c *Context) Contains(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

// Len returns the number of entries
func (c *Context) Len() int {
	if c == nil || c.entries == nil {
		return 0
	}
	return c.entries.Len()
}

// Keys returns every key in insertion order
func (c *Context) Keys() []string {
	if c == nil || c.entries == nil {
		return nil
	}
	keys := make([]string, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}
