package slotmap_test

import (
	"fmt"

	"github.com/plus3/slotmap/slotmap"
)

// ExampleSlotMap demonstrates the basic insert/lookup/erase cycle.
// Keys stay valid while other values come and go, and become
// permanently invalid once their value is erased.
func ExampleSlotMap() {
	m := slotmap.New[string]()

	hero := m.Insert("hero")
	monster := m.Insert("monster")

	fmt.Println(*m.Get(hero), *m.Get(monster))

	m.Erase(monster)

	if _, ok := m.TryGet(monster); !ok {
		fmt.Println("monster is gone")
	}
	fmt.Println(*m.Get(hero), "survives")

	// Output:
	// hero monster
	// monster is gone
	// hero survives
}

// ExampleSlotMap_iteration shows dense iteration. Values are stored
// contiguously, so iterating visits them in storage order with no
// holes, regardless of how many erases happened before.
func ExampleSlotMap_iteration() {
	m := slotmap.New[int]()

	keys := make([]slotmap.Key, 0, 5)
	for i := 1; i <= 5; i++ {
		keys = append(keys, m.Insert(i*10))
	}
	m.Erase(keys[1])
	m.Erase(keys[3])

	total := 0
	for v := range m.Values() {
		total += *v
	}
	fmt.Println("size:", m.Size(), "total:", total)

	// Output:
	// size: 3 total: 90
}

// ExampleSlotMap_growth shows that growing the map never invalidates
// outstanding keys: handles taken before the reallocation still
// resolve to their values afterwards.
func ExampleSlotMap_growth() {
	m := slotmap.New[int](4)
	first := m.Insert(100)

	for i := 0; i < 20; i++ {
		m.Insert(i)
	}

	fmt.Println("capacity:", m.Capacity())
	fmt.Println("first:", *m.Get(first))

	// Output:
	// capacity: 32
	// first: 100
}
