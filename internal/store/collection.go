package store

import (
	"sort"
	"strings"
	"sync"

	"icctv-admin/pkg/models"
)

// Keyed is implemented by every backend record through models.ModelFields.
type Keyed interface {
	PrimaryKey() int64
}

// Matcher decides whether an item is visible under a keyword. The keyword
// is never empty when a Matcher is called.
type Matcher[T any] func(item T, keyword string) bool

// Snapshot is a consistent copy of a collection's state.
type Snapshot[T any] struct {
	Loading bool
	Items   []T
	Keyword string
	Page    models.PageMeta
}

// Collection is the state one resource type shares between all of its
// consumers: the last server listing, the visible slice under the current
// keyword, an id index and a loading flag.
//
// Listings are fenced: every list call takes a sequence number and only
// the response for the latest issued number is applied, so an older
// response that arrives late cannot overwrite a newer one.
type Collection[T Keyed] struct {
	mu       sync.RWMutex
	inflight int
	raw      []T
	visible  []T
	index    map[int64]int
	keyword  string
	page     models.PageMeta
	match    Matcher[T]
	issued   uint64

	subMu   sync.Mutex
	subs    map[int]func(Snapshot[T])
	nextSub int
}

// NewCollection returns an empty collection. With a nil match the keyword
// is only recorded (for server-side filtering) and every item stays visible.
func NewCollection[T Keyed](match Matcher[T]) *Collection[T] {
	return &Collection[T]{
		raw:     []T{},
		visible: []T{},
		index:   map[int64]int{},
		match:   match,
		subs:    map[int]func(Snapshot[T]){},
	}
}

// begin marks an operation in flight. The returned func must be called
// exactly once, normally deferred, whatever the outcome.
func (c *Collection[T]) begin() func() {
	c.mu.Lock()
	c.inflight++
	c.mu.Unlock()
	c.publish()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.inflight--
			c.mu.Unlock()
			c.publish()
		})
	}
}

// issue reserves the sequence number of a new list call.
func (c *Collection[T]) issue() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.issued++
	return c.issued
}

// apply replaces the collection with a listing. It reports false and
// changes nothing when a newer list call has been issued since seq.
func (c *Collection[T]) apply(seq uint64, items []T, page models.PageMeta) bool {
	c.mu.Lock()
	if seq != c.issued {
		c.mu.Unlock()
		return false
	}

	raw := make([]T, len(items))
	copy(raw, items)

	index := make(map[int64]int, len(raw))
	for i, item := range raw {
		index[item.PrimaryKey()] = i
	}

	if page.Total < len(raw) {
		page.Total = len(raw)
	}

	c.raw = raw
	c.index = index
	c.page = page
	c.visible = c.filterLocked()
	c.mu.Unlock()

	c.publish()
	return true
}

// SetKeyword records the keyword and recomputes the visible slice from the
// last listing.
func (c *Collection[T]) SetKeyword(keyword string) {
	c.mu.Lock()
	c.keyword = strings.TrimSpace(keyword)
	c.visible = c.filterLocked()
	c.mu.Unlock()

	c.publish()
}

func (c *Collection[T]) filterLocked() []T {
	if c.match == nil || c.keyword == "" {
		out := make([]T, len(c.raw))
		copy(out, c.raw)
		return out
	}

	out := make([]T, 0, len(c.raw))
	for _, item := range c.raw {
		if c.match(item, c.keyword) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Collection[T]) Keyword() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.keyword
}

func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inflight > 0
}

// Items returns the visible items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.visible))
	copy(out, c.visible)
	return out
}

// All returns the last listing, ignoring the keyword.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.raw))
	copy(out, c.raw)
	return out
}

func (c *Collection[T]) Page() models.PageMeta {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page
}

// Lookup finds an item of the last listing by id without a network call.
func (c *Collection[T]) Lookup(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.raw[i], true
}

func (c *Collection[T]) Snapshot() Snapshot[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]T, len(c.visible))
	copy(items, c.visible)

	return Snapshot[T]{
		Loading: c.inflight > 0,
		Items:   items,
		Keyword: c.keyword,
		Page:    c.page,
	}
}

// Subscribe registers fn to receive a snapshot after every state change.
// Calls are made synchronously from the goroutine that changed the state.
func (c *Collection[T]) Subscribe(fn func(Snapshot[T])) (cancel func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Collection[T]) publish() {
	c.subMu.Lock()
	if len(c.subs) == 0 {
		c.subMu.Unlock()
		return
	}
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Snapshot[T]), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.subMu.Unlock()

	snap := c.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

// containsFold is a case-insensitive substring match.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// find scans items for id. Used on listings that are not applied to a collection.
func find[T Keyed](items []T, id int64) (T, bool) {
	for _, item := range items {
		if item.PrimaryKey() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
