// Package slotmap provides a dense, generation-checked container: values
// live in a contiguous array for cache-friendly iteration and are
// addressed through stable, copyable Keys that survive removals of other
// values. Insert, lookup, and erase are O(1); erase swap-removes so the
// value array never has gaps.
//
// A SlotMap is single-threaded by contract. There is no internal
// locking; wrap the whole map behind your own mutex if you need
// concurrent access.
package slotmap

import (
	"iter"
	"reflect"
)

const (
	defaultCapacity = 8
	noSlot          = int32(-1)
)

// slot is one indirection record. index is overloaded by occupancy:
// while the slot is free it holds the id of the next free slot (itself
// at the chain tail), while occupied it holds the dense position of the
// owned value. No separate occupancy flag exists; liveness is decided
// by generation match plus back-map cross-validation.
type slot struct {
	index      int32
	generation uint32
}

// SlotMap is a generic slot map for values of type T.
//
// Always use a *SlotMap obtained from New, Clone, or Move. Copying a
// SlotMap value aliases its backing arrays and is unsupported; there is
// no meaningful assignment semantics for a map with outstanding keys.
type SlotMap[T any] struct {
	slots   []slot
	data    []T
	backMap []int32

	firstFree int32
	lastFree  int32
	size      int

	refs refTable[T]
}

// New creates an empty SlotMap. An optional initial capacity may be
// given; zero, negative, or absent means the default of 8.
func New[T any](capacity ...int) *SlotMap[T] {
	c := defaultCapacity
	if len(capacity) > 0 && capacity[0] > 0 {
		c = capacity[0]
	}

	m := &SlotMap[T]{
		slots:   make([]slot, c),
		data:    make([]T, c),
		backMap: make([]int32, c),
	}
	m.chainSlots(0, c)
	m.firstFree = 0
	m.lastFree = int32(c - 1)
	return m
}

// chainSlots links slots [from, to) into one free run: each slot points
// at the next, the last points at itself.
func (m *SlotMap[T]) chainSlots(from, to int) {
	for i := from; i < to; i++ {
		m.slots[i].index = int32(i + 1)
	}
	if to > from {
		m.slots[to-1].index = int32(to - 1)
	}
}

// Size returns the number of live values.
func (m *SlotMap[T]) Size() int {
	return m.size
}

// Capacity returns the number of values the map can hold before the
// next growth.
func (m *SlotMap[T]) Capacity() int {
	return len(m.slots)
}

// Insert stores value and returns a Key that uniquely identifies it
// until it is erased or the map is cleared. Grows the map (doubling
// capacity) when full; growth never invalidates outstanding keys.
func (m *SlotMap[T]) Insert(value T) Key {
	if m.size == len(m.slots) {
		m.grow()
	}

	pos := int32(m.size)
	m.data[pos] = value

	id := m.acquireFreeSlot()
	m.slots[id].index = pos
	m.backMap[pos] = id
	m.size++

	return Key{Index: id, Generation: m.slots[id].generation}
}

// acquireFreeSlot pops the head of the free list. The caller must
// overwrite the slot's index with the occupant's dense position.
// Precondition: the free list is non-empty (Insert grows first).
func (m *SlotMap[T]) acquireFreeSlot() int32 {
	id := m.firstFree
	if m.slots[id].index == id {
		// Sole entry; the list is now empty.
		m.firstFree = noSlot
		m.lastFree = noSlot
	} else {
		m.firstFree = m.slots[id].index
	}
	return id
}

// releaseSlot bumps the slot's generation, permanently invalidating
// every key issued for the previous occupancy, and appends it at the
// free list's tail. Tail insertion (not head) keeps slot reuse from
// churning the same slot back and forth under fill/drain cycles.
func (m *SlotMap[T]) releaseSlot(id int32) {
	m.slots[id].generation++
	if m.lastFree == noSlot {
		m.firstFree = id
	} else {
		m.slots[m.lastFree].index = id
	}
	m.slots[id].index = id
	m.lastFree = id
}

// grow doubles capacity, preserving all three arrays and every
// outstanding key. Called only when size == capacity, so the new slot
// range becomes the entire free list.
func (m *SlotMap[T]) grow() {
	oldCap := len(m.slots)
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = defaultCapacity
	}

	slots := make([]slot, newCap)
	data := make([]T, newCap)
	backMap := make([]int32, newCap)
	copy(slots, m.slots)
	copy(data, m.data)
	copy(backMap, m.backMap)
	m.slots = slots
	m.data = data
	m.backMap = backMap

	m.chainSlots(oldCap, newCap)
	m.firstFree = int32(oldCap)
	m.lastFree = int32(newCap - 1)
}

// live reports whether key denotes a live value. Generation match alone
// is not enough: a forged key could name a never-occupied slot whose
// generation is still zero, so the slot's claimed dense position is
// cross-validated against the back-map.
func (m *SlotMap[T]) live(key Key) bool {
	if key.Index < 0 || int(key.Index) >= len(m.slots) {
		return false
	}
	s := m.slots[key.Index]
	if s.generation != key.Generation {
		return false
	}
	return s.index >= 0 && int(s.index) < m.size && m.backMap[s.index] == key.Index
}

// lookup resolves key to a pointer into the dense store.
func (m *SlotMap[T]) lookup(key Key) (*T, bool) {
	if !m.live(key) {
		return nil, false
	}
	return &m.data[m.slots[key.Index].index], true
}

// Get returns a pointer to the value for key, panicking with
// ErrInvalidKey if the key is stale or out of range. The pointer is
// valid only until the next mutating operation on the map. Use TryGet
// when the key may legitimately be stale.
func (m *SlotMap[T]) Get(key Key) *T {
	v, ok := m.lookup(key)
	if !ok {
		panic(ErrInvalidKey)
	}
	return v
}

// TryGet returns a copy of the value for key, or the zero value and
// false if the key is stale or out of range.
func (m *SlotMap[T]) TryGet(key Key) (T, bool) {
	if v, ok := m.lookup(key); ok {
		return *v, true
	}
	var zero T
	return zero, false
}

// Contains reports whether key denotes a live value.
func (m *SlotMap[T]) Contains(key Key) bool {
	return m.live(key)
}

// At returns a pointer to the value at dense position i, bypassing key
// and generation checks entirely. Panics with ErrIndexOutOfRange unless
// 0 <= i < Size(). Positions are reshuffled by Erase; do not cache them
// across mutations.
func (m *SlotMap[T]) At(i int) *T {
	if i < 0 || i >= m.size {
		panic(ErrIndexOutOfRange)
	}
	return &m.data[i]
}

// KeyForIndex returns the key that currently owns dense position i.
// Panics with ErrIndexOutOfRange unless 0 <= i < Size().
func (m *SlotMap[T]) KeyForIndex(i int) Key {
	if i < 0 || i >= m.size {
		panic(ErrIndexOutOfRange)
	}
	id := m.backMap[i]
	return Key{Index: id, Generation: m.slots[id].generation}
}

// Erase removes the value for key, swap-moving the last value into the
// vacated dense position to keep storage gap-free. Returns false
// without mutating anything if the key is stale or out of range: a
// second Erase of the same key always reports false.
func (m *SlotMap[T]) Erase(key Key) bool {
	if !m.live(key) {
		return false
	}

	id := key.Index
	pos := m.slots[id].index
	last := int32(m.size - 1)

	if pos != last {
		m.data[pos] = m.data[last]
		moved := m.backMap[last]
		m.slots[moved].index = pos
		m.backMap[pos] = moved
	}

	var zero T
	m.data[last] = zero

	m.releaseSlot(id)
	m.size--
	m.refs.drop(key)
	return true
}

// Clear removes every value and relinks all slots into one free run.
// Generations are incremented, never reset, so every pre-clear key is
// permanently invalid, not merely invalid until slot reuse. Capacity is
// retained.
func (m *SlotMap[T]) Clear() {
	var zero T
	for i := 0; i < m.size; i++ {
		m.data[i] = zero
	}
	m.size = 0

	for i := range m.slots {
		m.slots[i].generation++
	}
	m.chainSlots(0, len(m.slots))
	if len(m.slots) > 0 {
		m.firstFree = 0
		m.lastFree = int32(len(m.slots) - 1)
	} else {
		m.firstFree = noSlot
		m.lastFree = noSlot
	}

	m.refs.dropAll()
}

// Values iterates over the live values in dense order. The yielded
// pointers allow in-place modification. Do not insert or erase during
// iteration.
func (m *SlotMap[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := 0; i < m.size; i++ {
			if !yield(&m.data[i]) {
				return
			}
		}
	}
}

// All iterates over key/value pairs in dense order. Do not insert or
// erase during iteration.
func (m *SlotMap[T]) All() iter.Seq2[Key, *T] {
	return func(yield func(Key, *T) bool) {
		for i := 0; i < m.size; i++ {
			id := m.backMap[i]
			key := Key{Index: id, Generation: m.slots[id].generation}
			if !yield(key, &m.data[i]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the map. Every key issued by the
// original is also valid against the clone. Defined only for
// bit-copyable value types: if T contains (at any depth) a pointer,
// slice, map, string, chan, func, interface, or unsafe pointer, Clone
// panics, since the copy would share state with the original. Interned
// Refs do not carry over.
func (m *SlotMap[T]) Clone() *SlotMap[T] {
	if t := reflect.TypeFor[T](); !bitCopyable(t) {
		panic("slotmap: Clone requires a bit-copyable value type, got " + t.String())
	}

	clone := &SlotMap[T]{
		slots:     make([]slot, len(m.slots)),
		data:      make([]T, len(m.data)),
		backMap:   make([]int32, len(m.backMap)),
		firstFree: m.firstFree,
		lastFree:  m.lastFree,
		size:      m.size,
	}
	copy(clone.slots, m.slots)
	copy(clone.data, m.data)
	copy(clone.backMap, m.backMap)
	return clone
}

// Move transfers the map's entire contents to a freshly returned map
// and leaves the receiver valid, empty, and zero-capacity (it grows
// again from the default capacity on the next Insert). Keys issued
// before the move resolve against the returned map only. Interned Refs
// stay bound to the receiver and become stale.
func (m *SlotMap[T]) Move() *SlotMap[T] {
	moved := &SlotMap[T]{
		slots:     m.slots,
		data:      m.data,
		backMap:   m.backMap,
		firstFree: m.firstFree,
		lastFree:  m.lastFree,
		size:      m.size,
	}
	*m = SlotMap[T]{firstFree: noSlot, lastFree: noSlot}
	return moved
}

// bitCopyable walks t's kind structure looking for anything that would
// make a memberwise copy share state.
func bitCopyable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return bitCopyable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !bitCopyable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
