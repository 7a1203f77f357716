package slotmap_test

import (
	"errors"
	"fmt"

	"github.com/plus3/slotmap/slotmap"
)

// ExampleRef demonstrates pointer-like handles. A Ref binds a map and a
// key and re-resolves on every access, so it keeps working while the
// map relocates values internally and reports a stale key instead of
// dangling once the value is erased.
func ExampleRef() {
	m := slotmap.New[string]()

	key := m.Insert("target")
	ref := slotmap.NewRef(m, key)

	fmt.Println(ref.Value())

	// Churn forces swap-removes and growth; the ref keeps tracking.
	other := m.Insert("decoy")
	for i := 0; i < 20; i++ {
		m.Insert(fmt.Sprintf("filler-%d", i))
	}
	m.Erase(other)
	fmt.Println(ref.Value())

	m.Erase(key)
	if _, err := ref.Resolve(); errors.Is(err, slotmap.ErrInvalidKey) {
		fmt.Println("target erased, ref is stale")
	}

	// Output:
	// target
	// target
	// target erased, ref is stale
}

// ExampleRef_errorClasses shows the two failure classes a Ref can
// report: a never-bound ref fails with ErrNilSlotMap, a bound ref with
// a dead key fails with ErrInvalidKey.
func ExampleRef_errorClasses() {
	m := slotmap.New[int]()
	key := m.Insert(42)
	m.Erase(key)

	stale := slotmap.NewRef(m, key)
	unbound := slotmap.NewRef[int](nil, key)

	_, err := stale.Resolve()
	fmt.Println("stale:", errors.Is(err, slotmap.ErrInvalidKey))

	_, err = unbound.Resolve()
	fmt.Println("unbound:", errors.Is(err, slotmap.ErrNilSlotMap))

	// Output:
	// stale: true
	// unbound: true
}
