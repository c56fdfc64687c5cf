package attrs

import (
	"context"
	"sort"
	"sync"
)

// Bag is a mutable key/value store attached to a single request.
// It is safe for concurrent use.
type Bag struct {
	mu     sync.RWMutex
	values map[string]any
}

// New returns an empty Bag.
func New() *Bag {
	return &Bag{values: make(map[string]any)}
}

// Get returns the value stored under key. Nil values are reported as missing.
func (b *Bag) Get(key string) (any, bool) {
	if b == nil {
		return nil, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Set stores value under key. A nil value removes the key.
func (b *Bag) Set(key string, value any) {
	if b == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if value == nil {
		delete(b.values, key)
		return
	}
	b.values[key] = value
}

func (b *Bag) Delete(key string) {
	b.Set(key, nil)
}

// Keys returns the stored keys in lexical order.
func (b *Bag) Keys() []string {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	b.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

type contextKey struct{}

// WithContext stores the bag in ctx.
func WithContext(ctx context.Context, b *Bag) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}

// FromContext returns the bag stored in ctx, or nil.
func FromContext(ctx context.Context) *Bag {
	if ctx == nil {
		return nil
	}
	b, _ := ctx.Value(contextKey{}).(*Bag)
	return b
}

// Ensure returns ctx unchanged when it already carries a bag, otherwise a
// derived context holding a new one.
func Ensure(ctx context.Context) (context.Context, *Bag) {
	if b := FromContext(ctx); b != nil {
		return ctx, b
	}
	b := New()
	return WithContext(ctx, b), b
}

// Value returns the typed value stored under key in the bag carried by ctx.
// It returns the zero value of T when the key is missing or has another type.
func Value[T any](ctx context.Context, key string) T {
	var zero T
	v, ok := FromContext(ctx).Get(key)
	if !ok {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		return zero
	}
	return t
}
