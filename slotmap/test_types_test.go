package slotmap_test

// Common test value types
type Vec2 struct {
	X, Y float32
}

type Health struct {
	Current int
	Max     int
}

// Particle is a typical bit-copyable payload.
type Particle struct {
	Pos  Vec2
	Vel  Vec2
	Life float32
}

// Tracked has pointer and slice fields, so it is not bit-copyable.
type Tracked struct {
	Target *Vec2
	Tags   []string
}
