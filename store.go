package easel

import (
	"errors"
	"fmt"
)

// ErrMissingKey is returned by Store.Get for a key that has never been set.
var ErrMissingKey = errors.New("missing key")

// maxNotifyDepth bounds re-entrant Set chains. Listener graphs deeper than
// this are assumed to be cycles (A's listener sets B, whose listener sets A);
// the store logs an error and drops the fan-out instead of recursing forever.
const maxNotifyDepth = 64

type storeListener struct {
	id uint32
	fn func(any)
}

// Subscription is a handle to a registered store listener. Remove is
// idempotent and safe to call during a notification pass.
type Subscription struct {
	store *Store
	key   string
	id    uint32
}

// Remove unregisters the listener so it no longer fires.
func (s Subscription) Remove() {
	if s.store == nil {
		return
	}
	s.store.remove(s.key, s.id)
}

// Store is a flat observable key-value map. Set is the only primitive that
// triggers downstream computation: every registered listener for the key
// runs synchronously, in registration order, before Set returns. Chained
// bindings therefore propagate depth-first within a single Set call.
//
// Store is not safe for concurrent use. All access happens on the frame
// thread (see Scheduler).
type Store struct {
	values    map[string]any
	listeners map[string][]storeListener
	nextID    uint32
	depth     int
	notifyBuf []storeListener
	log       Logger
}

// NewStore creates an empty store reporting listener failures to log.
// A nil log falls back to the stderr logger.
func NewStore(log Logger) *Store {
	if log == nil {
		log = NewStderrLogger()
	}
	return &Store{
		values:    make(map[string]any),
		listeners: make(map[string][]storeListener),
		log:       log,
	}
}

// Set stores value under key and synchronously notifies every listener
// registered for key, in registration order. A panicking listener is
// recovered and logged; the remaining listeners still run.
func (s *Store) Set(key string, value any) {
	s.values[key] = value

	ls := s.listeners[key]
	if len(ls) == 0 {
		return
	}

	if s.depth >= maxNotifyDepth {
		s.log.Errorf("store: notify depth %d exceeded on %q, dropping fan-out (listener cycle?)", maxNotifyDepth, key)
		return
	}

	// Snapshot: listeners may subscribe or unsubscribe during dispatch.
	// Nested Set calls reuse deeper slices, so only the outermost pass can
	// use the shared buffer.
	var snapshot []storeListener
	if s.depth == 0 {
		s.notifyBuf = append(s.notifyBuf[:0], ls...)
		snapshot = s.notifyBuf
	} else {
		snapshot = append([]storeListener(nil), ls...)
	}

	s.depth++
	for _, l := range snapshot {
		safeCall(s.log, fmt.Sprintf("store listener for %q", key), func() {
			l.fn(value)
		})
	}
	s.depth--
}

// Get returns the value stored under key. Reading a key that has never been
// set fails with ErrMissingKey; a key explicitly set to nil does not.
func (s *Store) Get(key string) (any, error) {
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("store: %w: %q", ErrMissingKey, key)
	}
	return v, nil
}

// MustGet is like Get but panics on a missing key. Intended for keys the
// caller knows have been published (anchor positions, surface size).
func (s *Store) MustGet(key string) any {
	v, err := s.Get(key)
	if err != nil {
		panic("easel: " + err.Error())
	}
	return v
}

// Has reports whether key has ever been set.
func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// OnChange registers fn to run on every Set of key and returns a handle for
// removal. Registration order is notification order.
func (s *Store) OnChange(key string, fn func(any)) Subscription {
	s.nextID++
	id := s.nextID
	s.listeners[key] = append(s.listeners[key], storeListener{id: id, fn: fn})
	return Subscription{store: s, key: key, id: id}
}

// RemoveOnChange removes the listener identified by sub. Equivalent to
// sub.Remove.
func (s *Store) RemoveOnChange(sub Subscription) {
	sub.Remove()
}

func (s *Store) remove(key string, id uint32) {
	ls := s.listeners[key]
	for i := range ls {
		if ls[i].id == id {
			copy(ls[i:], ls[i+1:])
			ls[len(ls)-1] = storeListener{}
			s.listeners[key] = ls[:len(ls)-1]
			return
		}
	}
}
