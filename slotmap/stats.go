package slotmap

// Stats is a point-in-time snapshot of a map's internal shape, intended
// for debug tooling and tests. Collecting it walks the free list, so it
// is O(capacity), unlike every regular operation.
type Stats struct {
	Size          int
	Capacity      int
	FreeSlots     int
	RecycledSlots int     // slots whose generation has ever advanced
	MaxGeneration uint32  // highest generation across all slots
	FreeList      []int32 // free slot ids in chain order, head to tail
}

// CollectStats snapshots the map's current shape. The free list is
// traversed from the head; a chain that fails to terminate within
// capacity steps is truncated (it would mean internal corruption, and
// debug tooling should still be able to render it).
func (m *SlotMap[T]) CollectStats() Stats {
	stats := Stats{
		Size:      m.size,
		Capacity:  len(m.slots),
		FreeSlots: len(m.slots) - m.size,
	}

	for i := range m.slots {
		g := m.slots[i].generation
		if g > 0 {
			stats.RecycledSlots++
		}
		if g > stats.MaxGeneration {
			stats.MaxGeneration = g
		}
	}

	if m.firstFree != noSlot {
		stats.FreeList = make([]int32, 0, stats.FreeSlots)
		id := m.firstFree
		for range m.slots {
			stats.FreeList = append(stats.FreeList, id)
			next := m.slots[id].index
			if next == id {
				break
			}
			id = next
		}
	}

	return stats
}
