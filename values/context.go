package values

import (
	"fmt"
	"sort"
	"strings"
)

// Context is a string-keyed map value. Iteration order is key order,
// which tests assert; instances are reference-shared, so built-ins
// like "context put" mutate in place.
type Context struct {
	entries map[string]Value
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{entries: make(map[string]Value)}
}

func (*Context) TypeName() string { return "context" }

func (c *Context) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, key := range c.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := c.Get(key)
		fmt.Fprintf(&b, "%q:%s", key, v)
	}
	b.WriteString("}")
	return b.String()
}

// Len returns the number of entries.
func (c *Context) Len() int {
	return len(c.entries)
}

// Get returns the value bound to key.
func (c *Context) Get(key string) (Value, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Keys returns the keys in iteration (sorted) order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ContextEntry is one key/value pair of a context.
type ContextEntry struct {
	Key   string
	Value Value
}

// Entries returns all entries in iteration order.
func (c *Context) Entries() []ContextEntry {
	entries := make([]ContextEntry, 0, len(c.entries))
	for _, k := range c.Keys() {
		entries = append(entries, ContextEntry{Key: k, Value: c.entries[k]})
	}
	return entries
}

// GetPath traverses nested contexts along the given keys.
func (c *Context) GetPath(path []string) (Value, bool) {
	switch len(path) {
	case 0:
		return nil, false
	case 1:
		return c.Get(path[0])
	default:
		if child, ok := c.Get(path[0]); ok {
			if childCtx, ok := child.(*Context); ok {
				return childCtx.GetPath(path[1:])
			}
		}
		return nil, false
	}
}

// Insert binds key to value, replacing any previous binding.
func (c *Context) Insert(key string, value Value) {
	c.entries[key] = value
}

// InsertPath inserts along a nested key path, creating intermediate
// contexts where missing. It fails silently when a middle key resolves
// to a non-context.
func (c *Context) InsertPath(path []string, value Value) {
	switch len(path) {
	case 0:
	case 1:
		c.Insert(path[0], value)
	default:
		switch child := c.entries[path[0]].(type) {
		case *Context:
			child.InsertPath(path[1:], value)
		case nil:
			childCtx := NewContext()
			childCtx.InsertPath(path[1:], value)
			c.Insert(path[0], childCtx)
		default:
			// middle key bound to a non-context
		}
	}
}

// Merge copies the other context's entries over this one.
func (c *Context) Merge(other *Context) {
	for _, ent := range other.Entries() {
		c.Insert(ent.Key, ent.Value)
	}
}
