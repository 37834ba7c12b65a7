package common

// ID is a stable identifier, unique per allocator, for a class declaration
// (named or synthetic); a type parameter is identified by its owning
// class's ID plus its index. The teacher keys named types by (parentID, declIndex)
// (`bootstrap/types/types.go`'s NamedTypeBase); the core collapses that to
// a single monotonic integer per spec §9's Design Notes ("prefer an arena
// of class records with stable integer ids and back-edges expressed as ids,
// never owning pointers").
type ID uint64

// IDAllocator hands out strictly monotonic IDs. It is owned by the driver,
// not by any resolver component, matching spec §5's "global id generator:
// strictly monotonic ... no locks under the single-threaded contract."
type IDAllocator struct {
	next ID
}

// NewIDAllocator creates an allocator starting at 1 (0 is reserved to mean
// "no id" / the zero value of ID).
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

// Next returns a fresh, never-before-issued ID.
func (a *IDAllocator) Next() ID {
	id := a.next
	a.next++
	return id
}
