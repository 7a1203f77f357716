package slotmap

// Key identifies a value previously inserted into a SlotMap. Keys are
// plain comparable values: copy them, store them in maps, discard them
// freely. A Key is only meaningful against the SlotMap that issued it.
type Key struct {
	// Index is the slot id inside the owning map's slot table.
	// Negative for a key that never came from an Insert.
	Index int32
	// Generation is the slot's generation at issue time. Plain uint32
	// with no wraparound handling; after 2^32 erases of one slot a
	// stale key may alias a live one.
	Generation uint32
}

// InvalidKey is the canonical default key. It never matches any key
// returned by Insert.
var InvalidKey = Key{Index: -1}

// IsValid reports whether the key could have been issued by some map.
// It does not check the key against any particular map.
func (k Key) IsValid() bool {
	return k.Index >= 0
}

// Compare orders keys by index, then generation. The order has no
// semantic meaning beyond being total and stable.
func (k Key) Compare(other Key) int {
	if k.Index != other.Index {
		if k.Index < other.Index {
			return -1
		}
		return 1
	}
	if k.Generation != other.Generation {
		if k.Generation < other.Generation {
			return -1
		}
		return 1
	}
	return 0
}

// Pack encodes the key into a single uint64, generation in the upper
// 32 bits and slot index in the lower 32 bits.
func (k Key) Pack() uint64 {
	return uint64(k.Generation)<<32 | uint64(uint32(k.Index))
}

// UnpackKey decodes a key produced by Pack.
func UnpackKey(packed uint64) Key {
	return Key{
		Index:      int32(uint32(packed & 0xFFFFFFFF)),
		Generation: uint32(packed >> 32),
	}
}
