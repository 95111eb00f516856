package threadlocal

// Unset is returned by IndexSlot.Get when no index was set.
const Unset = -1

// IndexSlot stores a zero-based thread index per goroutine.
//
// Values are stored biased by one so that the zero value of storage never
// aliases index 0. Storage is 64-bit, so every non-negative int round-trips.
type IndexSlot struct {
	slot *Slot[uint64]
}

// NewIndexSlot allocates an index slot.
func NewIndexSlot(name string) *IndexSlot {
	return &IndexSlot{slot: NewSlot[uint64](name)}
}

// Set associates idx with the calling goroutine. A negative idx clears it.
func (s *IndexSlot) Set(idx int) {
	if idx < 0 {
		s.slot.Clear()
		return
	}
	s.slot.Set(uint64(idx) + 1)
}

// Get returns the calling goroutine's index, or Unset.
func (s *IndexSlot) Get() int {
	v, _ := s.slot.Get()
	return int(v) - 1
}

// Clear removes the calling goroutine's index.
func (s *IndexSlot) Clear() {
	s.slot.Clear()
}

// Len returns the number of goroutines holding an index.
func (s *IndexSlot) Len() int {
	return s.slot.Len()
}

// Free releases the slot.
func (s *IndexSlot) Free() {
	s.slot.Free()
}
