package lifecycle

import (
	"github.com/yndnr/scancore-go/internal/core/confstore"
	"github.com/yndnr/scancore-go/pkg/threadlocal"
)

// SetThreadIndex records tidx as the calling goroutine's thread index.
// A negative index clears it. Without an initialized runtime the call has
// no effect.
func (r *Runtime) SetThreadIndex(tidx int) {
	if o := r.owned.Load(); o != nil {
		o.tidx.Set(tidx)
	}
}

// ThreadIndex returns the calling goroutine's thread index, or -1 when
// none was set or the runtime is not initialized.
func (r *Runtime) ThreadIndex() int {
	if o := r.owned.Load(); o != nil {
		return o.tidx.Get()
	}
	return threadlocal.Unset
}

// SetRecoveryState stores an opaque recovery handle for the calling
// goroutine. nil clears it.
func (r *Runtime) SetRecoveryState(state any) {
	o := r.owned.Load()
	if o == nil {
		return
	}
	if state == nil {
		o.recovery.Clear()
		return
	}
	o.recovery.Set(state)
}

// RecoveryState returns the calling goroutine's recovery handle, or nil.
func (r *Runtime) RecoveryState() any {
	o := r.owned.Load()
	if o == nil {
		return nil
	}
	v, _ := o.recovery.Get()
	return v
}

// SetConfiguration stores src under name. See confstore.Store.Set.
func (r *Runtime) SetConfiguration(name confstore.Name, src any) error {
	return r.config.Set(name, src)
}

// GetConfiguration copies the value of name into dst. See
// confstore.Store.Get.
func (r *Runtime) GetConfiguration(name confstore.Name, dst any) error {
	return r.config.Get(name, dst)
}
