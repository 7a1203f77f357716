package slotmap

import (
	"fmt"
	"weak"

	"github.com/kamstrup/intmap"
)

// Ref is a pointer-like handle binding one SlotMap and one Key. It
// never caches a storage address: every access re-resolves the key
// against the map, so a Ref stays correct across swap-removes and
// growth relocating the underlying value.
type Ref[T any] struct {
	m   *SlotMap[T]
	key Key
}

// NewRef binds a map and a key into a Ref. A nil map is allowed; the
// resulting Ref reports ErrNilSlotMap on every resolve. Use
// (*SlotMap).Ref instead when canonical, shared Ref instances per key
// are wanted.
func NewRef[T any](m *SlotMap[T], key Key) *Ref[T] {
	return &Ref[T]{m: m, key: key}
}

// Key returns the bound key.
func (r *Ref[T]) Key() Key {
	return r.key
}

// Valid reports whether the Ref currently resolves to a live value.
func (r *Ref[T]) Valid() bool {
	return r.m != nil && r.m.live(r.key)
}

// Resolve returns a pointer to the bound value. It fails with
// ErrNilSlotMap when the Ref was never bound to a map, and with
// ErrInvalidKey when the map is live but the key no longer denotes a
// value. The pointer is valid only until the next mutating operation
// on the map.
func (r *Ref[T]) Resolve() (*T, error) {
	if r.m == nil {
		return nil, fmt.Errorf("ref (%d,%d): %w", r.key.Index, r.key.Generation, ErrNilSlotMap)
	}
	v, ok := r.m.lookup(r.key)
	if !ok {
		return nil, fmt.Errorf("ref (%d,%d): %w", r.key.Index, r.key.Generation, ErrInvalidKey)
	}
	return v, nil
}

// Value returns a copy of the bound value, panicking where Resolve
// would fail.
func (r *Ref[T]) Value() T {
	v, err := r.Resolve()
	if err != nil {
		panic(err)
	}
	return *v
}

// Ref returns the canonical Ref for key: repeated calls with the same
// key return the same pointer for as long as any caller holds it.
// Interned Refs are tracked weakly, so dropping every reference lets
// the Ref be collected. Erase and Clear remove intern entries; the Ref
// objects themselves simply become stale.
func (m *SlotMap[T]) Ref(key Key) *Ref[T] {
	return m.refs.intern(m, key)
}

// refTable interns canonical Refs per packed key, keeping only weak
// pointers so the table never delays collection of abandoned Refs.
// Lazily initialized: maps that never hand out Refs pay nothing.
type refTable[T any] struct {
	refs *intmap.Map[uint64, weak.Pointer[Ref[T]]]
}

func (t *refTable[T]) intern(m *SlotMap[T], key Key) *Ref[T] {
	if t.refs == nil {
		t.refs = intmap.New[uint64, weak.Pointer[Ref[T]]](64)
	}

	packed := key.Pack()
	if weakPtr, ok := t.refs.Get(packed); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		// Weak pointer is dead, remove it.
		t.refs.Del(packed)
	}

	ref := NewRef(m, key)
	t.refs.Put(packed, weak.Make(ref))
	return ref
}

func (t *refTable[T]) drop(key Key) {
	if t.refs == nil {
		return
	}
	t.refs.Del(key.Pack())
}

func (t *refTable[T]) dropAll() {
	if t.refs == nil {
		return
	}
	t.refs.Clear()
}
