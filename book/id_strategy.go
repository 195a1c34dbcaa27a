package book

// IDStrategy decides which id a new book receives
type IDStrategy int

const (
	// Monotonic hands out the highest id ever assigned plus one. Ids are never reused.
	Monotonic IDStrategy = iota + 1
	// Length hands out the current collection length plus one.
	// After a deletion this can collide with an id still in use.
	Length
)

func (s IDStrategy) String() string {
	switch s {
	case Monotonic:
		return "monotonic"
	case Length:
		return "length"
	}
	return "unknown"
}

// NewIDStrategy parses a strategy name, defaulting to Monotonic
func NewIDStrategy(s string) IDStrategy {
	switch s {
	case "length":
		return Length
	case "monotonic":
		return Monotonic
	}
	return Monotonic
}

// NextID returns the id for a new book given the current collection length
// and the highest id the collection has ever held.
func (s IDStrategy) NextID(length int, highest int64) int64 {
	if s == Length {
		return int64(length) + 1
	}
	return highest + 1
}
