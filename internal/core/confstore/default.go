package confstore

// Built-in defaults applied on every first initialization.
const (
	DefaultStackSize             uint32 = 16384
	DefaultMaxStringsPerRule     uint32 = 10000
	DefaultMaxMatchData          uint32 = 512
	DefaultMaxProcessMemoryChunk uint64 = 1 << 30
)

func defaults() [nameCount]Value {
	return [nameCount]Value{
		StackSize:             Uint32Value(DefaultStackSize),
		MaxStringsPerRule:     Uint32Value(DefaultMaxStringsPerRule),
		MaxMatchData:          Uint32Value(DefaultMaxMatchData),
		MaxProcessMemoryChunk: Uint64Value(DefaultMaxProcessMemoryChunk),
	}
}
