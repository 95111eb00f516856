package confstore

// Value is a tagged configuration value.
type Value struct {
	kind Kind
	u32  uint32
	u64  uint64
	ptr  any
}

// Uint32Value wraps a 32-bit value.
func Uint32Value(v uint32) Value {
	return Value{kind: KindUint32, u32: v}
}

// Uint64Value wraps a 64-bit value.
func Uint64Value(v uint64) Value {
	return Value{kind: KindUint64, u64: v}
}

// PointerValue wraps an opaque reference.
func PointerValue(v any) Value {
	return Value{kind: KindPointer, ptr: v}
}

// Kind returns the value's tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Uint32 returns the 32-bit payload.
func (v Value) Uint32() uint32 {
	return v.u32
}

// Uint64 returns the 64-bit payload.
func (v Value) Uint64() uint64 {
	return v.u64
}

// Pointer returns the reference payload.
func (v Value) Pointer() any {
	return v.ptr
}

// Interface returns the payload as an untyped value.
func (v Value) Interface() any {
	switch v.kind {
	case KindUint32:
		return v.u32
	case KindUint64:
		return v.u64
	case KindPointer:
		return v.ptr
	default:
		return nil
	}
}
