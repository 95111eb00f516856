// Package casetable provides the byte case tables used by the matching
// engine for case-insensitive and case-toggling comparisons.
//
// Tables are built once by the runtime and are immutable afterwards, so
// they may be read from any number of goroutines without synchronization.
// Only ASCII letters are folded; every other byte maps to itself.
package casetable

// Size is the number of entries in each table.
const Size = 256

// Tables holds the lowercase-folding and case-toggle tables.
type Tables struct {
	// Lower maps every byte to its lowercase form.
	Lower [Size]byte
	// Alter swaps ASCII upper and lower case.
	Alter [Size]byte
}

// Build computes both tables.
func Build() *Tables {
	t := &Tables{}
	for i := 0; i < Size; i++ {
		c := byte(i)
		switch {
		case c >= 'a' && c <= 'z':
			t.Alter[i] = c - 32
			t.Lower[i] = c
		case c >= 'A' && c <= 'Z':
			t.Alter[i] = c + 32
			t.Lower[i] = c + 32
		default:
			t.Alter[i] = c
			t.Lower[i] = c
		}
	}
	return t
}

// ToLower returns the lowercase form of b.
func (t *Tables) ToLower(b byte) byte {
	return t.Lower[b]
}

// Toggle returns b with its ASCII case swapped.
func (t *Tables) Toggle(b byte) byte {
	return t.Alter[b]
}

// EqualFold reports whether a and b are equal under ASCII case folding.
func (t *Tables) EqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if t.Lower[a[i]] != t.Lower[b[i]] {
			return false
		}
	}
	return true
}
