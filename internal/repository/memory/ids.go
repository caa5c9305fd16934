package memory

// Entity kinds known to the id allocator.
const (
	KindUser   = "user"
	KindGame   = "game"
	KindRental = "rental"
)

// IDAllocator issues identifiers per entity kind: strictly increasing,
// starting at 1, never reused within the process lifetime even when the
// owning entity is deleted. Not safe for concurrent use; callers hold the
// hub lock.
type IDAllocator struct {
	next map[string]int64
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: make(map[string]int64)}
}

// Next returns the next identifier for the given kind.
func (a *IDAllocator) Next(kind string) int64 {
	a.next[kind]++
	return a.next[kind]
}

// Last returns the highest identifier issued so far for the given kind,
// or 0 when none has been issued.
func (a *IDAllocator) Last(kind string) int64 {
	return a.next[kind]
}
