package confstore

import (
	"fmt"
	"strings"

	"github.com/yndnr/scancore-go/internal/core/domain"
)

// Name identifies a configuration entry.
type Name int

// Configuration keys. The set is closed: a value outside [0, nameCount)
// is rejected by every accessor.
const (
	// StackSize is the number of slots of the matching engine's execution stack.
	StackSize Name = iota
	// MaxStringsPerRule bounds the number of strings a single rule may declare.
	MaxStringsPerRule
	// MaxMatchData bounds the bytes of match data kept per match.
	MaxMatchData
	// MaxProcessMemoryChunk bounds the size of one process-memory read.
	MaxProcessMemoryChunk

	nameCount
)

// Kind is the value type declared by a configuration key.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUint32
	KindUint64
	KindPointer
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindPointer:
		return "pointer"
	default:
		return "invalid"
	}
}

type nameInfo struct {
	key  string
	kind Kind
}

var names = [nameCount]nameInfo{
	StackSize:             {key: "stack_size", kind: KindUint32},
	MaxStringsPerRule:     {key: "max_strings_per_rule", kind: KindUint32},
	MaxMatchData:          {key: "max_match_data", kind: KindUint32},
	MaxProcessMemoryChunk: {key: "max_process_memory_chunk", kind: KindUint64},
}

// Names returns every supported key in declaration order.
func Names() []Name {
	out := make([]Name, 0, nameCount)
	for n := Name(0); n < nameCount; n++ {
		out = append(out, n)
	}
	return out
}

// Valid reports whether n is a supported key.
func (n Name) Valid() bool {
	return n >= 0 && n < nameCount
}

// Kind returns the declared value type of n.
func (n Name) Kind() Kind {
	if !n.Valid() {
		return KindInvalid
	}
	return names[n].kind
}

// String returns the settings key of n (e.g. "stack_size").
func (n Name) String() string {
	if !n.Valid() {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return names[n].key
}

// ParseName resolves a settings key. Dashes and case are ignored.
func ParseName(s string) (Name, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for n := Name(0); n < nameCount; n++ {
		if names[n].key == key {
			return n, nil
		}
	}
	return 0, domain.ErrInvalidArgument.WithDetailsf("unknown configuration key %q", s)
}
