package reveal

import "errors"

// Handle is a registration token. Release detaches everything the handle
// owns: observers, subscriptions, listeners and in-flight playback. Every
// handle type in this package tolerates repeated Release calls.
type Handle interface {
	Release()
}

// HandleFunc adapts a plain function to Handle, e.g. to detach an external
// widget together with a scope.
type HandleFunc func()

// Release calls f.
func (f HandleFunc) Release() {
	f()
}

// Scope collects the handles created while one page region is mounted and
// releases them together when it unmounts.
type Scope struct {
	handles []Handle
	errs    []error
	closed  bool
}

// NewScope creates an empty, open scope.
func NewScope() *Scope {
	return &Scope{}
}

// WithScope runs setup and collects every handle it returns.
func WithScope(setup func() []Handle) *Scope {
	s := NewScope()
	for _, h := range setup() {
		s.Add(h)
	}
	return s
}

// Add collects h. A nil handle is ignored. Adding to a closed scope releases
// h immediately so nothing outlives its scope.
func (s *Scope) Add(h Handle) {
	if h == nil {
		return
	}
	if s.closed {
		releaseQuietly(h)
		return
	}
	s.handles = append(s.handles, h)
}

// Keep collects h when err is nil and records err otherwise, so one failed
// registration does not stop the rest of a setup. Reports whether h was kept.
//
//	scope.Keep(registry.Register(region, tl, win))
func (s *Scope) Keep(h Handle, err error) bool {
	if err != nil {
		s.errs = append(s.errs, err)
		return false
	}
	s.Add(h)
	return true
}

// Fail records a setup error that did not come from a registration.
func (s *Scope) Fail(err error) {
	if err != nil {
		s.errs = append(s.errs, err)
	}
}

// Err returns every setup error joined, or nil.
func (s *Scope) Err() error {
	return errors.Join(s.errs...)
}

// Len returns the number of collected handles.
func (s *Scope) Len() int {
	return len(s.handles)
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	return s.closed
}

// Close releases every collected handle exactly once, newest first. A panic
// in one release is logged and does not stop the others. Closing again is a
// no-op.
func (s *Scope) Close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	handles := s.handles
	s.handles = nil
	for i := len(handles) - 1; i >= 0; i-- {
		releaseQuietly(handles[i])
	}
}

// Release closes the scope, so scopes nest inside other scopes and gates.
func (s *Scope) Release() {
	s.Close()
}

// releaseQuietly releases h, logging instead of propagating a panic.
func releaseQuietly(h Handle) {
	defer recoverCallback("release")
	h.Release()
}
