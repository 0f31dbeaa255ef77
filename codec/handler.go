package codec

import "github.com/arloliu/brs/errs"

// Handler consumes the hunks found by a decoder.
//
// HandleHunk is called once per hunk, in buffer order. payload is a view into the
// decoded buffer and must not be retained after the call returns; copy it if needed.
// index is NoIndex for plain values and the array index for element hunks.
//
// The return value reports whether the hunk was recognized. The decoder ignores it;
// it lets handlers be composed, see Dispatcher.
type Handler interface {
	HandleHunk(name string, payload []byte, index int32) bool
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(name string, payload []byte, index int32) bool

// HandleHunk calls f(name, payload, index).
func (f HandlerFunc) HandleHunk(name string, payload []byte, index int32) bool {
	return f(name, payload, index)
}

// NestedHandler is a Handler that decodes the sub-buffers it receives.
//
// The decoder calls HandleNested instead of HandleHunk for it, passing the Scope of the
// buffer being decoded. Sub-buffers must be decoded with s.Decode so the decoder can
// count the nesting depth.
type NestedHandler interface {
	Handler
	HandleNested(s Scope, name string, payload []byte, index int32) bool
}

// NestedFunc adapts an ordinary function to the NestedHandler interface.
type NestedFunc func(s Scope, name string, payload []byte, index int32) bool

var _ NestedHandler = NestedFunc(nil)

// HandleNested calls f(s, name, payload, index).
func (f NestedFunc) HandleNested(s Scope, name string, payload []byte, index int32) bool {
	return f(s, name, payload, index)
}

// HandleHunk calls f with the zero Scope.
func (f NestedFunc) HandleHunk(name string, payload []byte, index int32) bool {
	return f(Scope{}, name, payload, index)
}

// HandlerID identifies a handler registered with a Dispatcher.
type HandlerID uint64

type dispatchEntry struct {
	id      HandlerID
	handler Handler
}

// Dispatcher fans every hunk out to a list of registered handlers.
//
// Handlers run in registration order. The Dispatcher reports a hunk as handled when
// at least one handler did.
//
// Note: Dispatcher is NOT thread-safe; do not register or remove handlers while a decode is running.
type Dispatcher struct {
	entries []dispatchEntry
	nextID  HandlerID
}

var _ NestedHandler = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with the given handlers already registered.
func NewDispatcher(handlers ...Handler) (*Dispatcher, error) {
	d := &Dispatcher{}
	for _, h := range handlers {
		if _, err := d.Add(h); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Add registers h and returns the ID needed to remove it.
func (d *Dispatcher) Add(h Handler) (HandlerID, error) {
	if h == nil {
		return 0, errs.ErrNilHandler
	}

	d.nextID++
	d.entries = append(d.entries, dispatchEntry{id: d.nextID, handler: h})

	return d.nextID, nil
}

// Remove unregisters the handler with the given ID. It reports whether it was found.
func (d *Dispatcher) Remove(id HandlerID) bool {
	for i, e := range d.entries {
		if e.id == id {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			return true
		}
	}

	return false
}

// Len returns the number of registered handlers.
func (d *Dispatcher) Len() int {
	return len(d.entries)
}

// HandleHunk passes the hunk to every registered handler.
func (d *Dispatcher) HandleHunk(name string, payload []byte, index int32) bool {
	return d.HandleNested(Scope{}, name, payload, index)
}

// HandleNested passes the hunk to every registered handler, forwarding s to
// the ones that decode sub-buffers.
func (d *Dispatcher) HandleNested(s Scope, name string, payload []byte, index int32) bool {
	hunk := Hunk{Name: name, Payload: payload, Index: index}

	handled := false
	for _, e := range d.entries {
		if dispatch(e.handler, s, hunk) {
			handled = true
		}
	}

	return handled
}
