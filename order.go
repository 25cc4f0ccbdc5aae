package recache

// handle addresses a slot in the recency arena. nilHandle marks "none".
type handle int32

const nilHandle handle = -1

// slot holds one cache entry together with its links into the recency
// sequence. Slots are reused through the free list after removal.
type slot[V any] struct {
	key   uint64
	value V
	prev  handle
	next  handle
}

// entry is a detached key/value pair, used to hand removed entries to the
// controller for eviction notification.
type entry[V any] struct {
	key   uint64
	value V
}

// recencyOrder is the combined recency order and index: an arena of slots
// linked into a doubly-linked sequence (head = most recently used, tail =
// least recently used) plus a key-to-handle map for O(1) lookup,
// move-to-head and tail removal. The sequence and the index always hold
// exactly the same key set.
//
// Not safe for concurrent use; Cache serializes all access.
type recencyOrder[V any] struct {
	slots []slot[V]
	index map[uint64]handle
	head  handle
	tail  handle
	free  []handle
}

func newRecencyOrder[V any]() *recencyOrder[V] {
	return &recencyOrder[V]{
		index: make(map[uint64]handle),
		head:  nilHandle,
		tail:  nilHandle,
	}
}

func (o *recencyOrder[V]) len() int {
	return len(o.index)
}

func (o *recencyOrder[V]) contains(key uint64) bool {
	_, ok := o.index[key]
	return ok
}

// peek returns the value for key without altering the recency order.
func (o *recencyOrder[V]) peek(key uint64) (V, bool) {
	h, ok := o.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return o.slots[h].value, true
}

// setValue replaces the value for key in place, reporting whether the key
// was present. The recency position is not changed.
func (o *recencyOrder[V]) setValue(key uint64, value V) bool {
	h, ok := o.index[key]
	if !ok {
		return false
	}
	o.slots[h].value = value
	return true
}

// touch moves the entry for key to the head. No-op when the key is absent
// or already at the head.
func (o *recencyOrder[V]) touch(key uint64) {
	h, ok := o.index[key]
	if !ok || h == o.head {
		return
	}
	o.unlink(h)
	o.linkAtHead(h)
}

// insertAtHead creates a new most-recently-used entry for key.
func (o *recencyOrder[V]) insertAtHead(key uint64, value V) error {
	if _, ok := o.index[key]; ok {
		return ErrDuplicateKey
	}
	h := o.alloc()
	o.slots[h].key = key
	o.slots[h].value = value
	o.linkAtHead(h)
	o.index[key] = h
	return nil
}

// removeTail removes and returns the least-recently-used entry.
func (o *recencyOrder[V]) removeTail() (uint64, V, error) {
	if o.tail == nilHandle {
		var zero V
		return 0, zero, ErrEmpty
	}
	h := o.tail
	key, value := o.slots[h].key, o.slots[h].value
	o.unlink(h)
	delete(o.index, key)
	o.release(h)
	return key, value, nil
}

// drain removes every entry and returns them in head-to-tail order so the
// controller can notify most-recently-used first.
func (o *recencyOrder[V]) drain() []entry[V] {
	out := make([]entry[V], 0, len(o.index))
	var zero V
	for h := o.head; h != nilHandle; {
		next := o.slots[h].next
		out = append(out, entry[V]{key: o.slots[h].key, value: o.slots[h].value})
		o.slots[h].value = zero
		h = next
	}
	clear(o.index)
	o.slots = o.slots[:0]
	o.free = o.free[:0]
	o.head, o.tail = nilHandle, nilHandle
	return out
}

// alloc takes a slot from the free list or grows the arena.
func (o *recencyOrder[V]) alloc() handle {
	if n := len(o.free); n > 0 {
		h := o.free[n-1]
		o.free = o.free[:n-1]
		return h
	}
	o.slots = append(o.slots, slot[V]{})
	return handle(len(o.slots) - 1)
}

// release returns a slot to the free list, dropping the value reference so
// evicted values become collectable.
func (o *recencyOrder[V]) release(h handle) {
	var zero V
	o.slots[h].value = zero
	o.free = append(o.free, h)
}

func (o *recencyOrder[V]) linkAtHead(h handle) {
	o.slots[h].prev = nilHandle
	o.slots[h].next = o.head
	if o.head != nilHandle {
		o.slots[o.head].prev = h
	}
	o.head = h
	if o.tail == nilHandle {
		o.tail = h
	}
}

func (o *recencyOrder[V]) unlink(h handle) {
	prev, next := o.slots[h].prev, o.slots[h].next
	if prev != nilHandle {
		o.slots[prev].next = next
	} else {
		o.head = next
	}
	if next != nilHandle {
		o.slots[next].prev = prev
	} else {
		o.tail = prev
	}
	o.slots[h].prev, o.slots[h].next = nilHandle, nilHandle
}
