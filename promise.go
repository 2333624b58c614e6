// Copyright 2026 Ahmad Sameh(asmsh)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package promise

import (
	"runtime"

	"github.com/eiband/promise/internal/trampoline"
)

// Promise is the write side of the promise/future pair: a move-only handle
// used to satisfy the Shared State exactly once, with SetValue or
// SetError.
//
// Like Future, a Promise is valid exactly once: SetValue, SetError, or
// Discard consumes the handle.
type Promise[T any] struct {
	s     *sharedState[T]
	guard *finalizerGuard
}

// finalizerGuard is the object runtime.SetFinalizer is actually attached
// to. It is kept separate from Promise itself because SetFinalizer refuses
// to arm a finalizer on a value with no pointer indirection reachable from
// outside the runtime's view of it, and because Promise is meant to be
// passed around by value; giving the guard its own small allocation keeps
// that move semantics intact while still letting the GC notice an
// abandoned promise, the same role the finalizer on an *os.File plays for
// an unclosed descriptor.
//
// The unused pointer field keeps the guard from being zero-size: every
// zero-size allocation shares one address that is never collected, so a
// finalizer armed on it would never run.
type finalizerGuard struct {
	_ *byte
}

// NewPromise creates a fresh Shared State and returns the Promise/Future
// pair bound to it.
//
// If the returned Promise is dropped without SetValue, SetError, or
// Discard ever being called on it, the paired Future's chain is eventually
// resolved with ErrBrokenPromise once the Promise is garbage collected.
// Call Discard explicitly instead of relying on this: the finalizer runs on
// GC's schedule, not the caller's.
func NewPromise[T any]() (Promise[T], Future[T]) {
	s := newSharedState[T]()
	guard := &finalizerGuard{}
	runtime.SetFinalizer(guard, func(*finalizerGuard) {
		breakPromise(s)
	})
	return Promise[T]{s: s, guard: guard}, newFuture(s)
}

// breakPromise resolves s with ErrBrokenPromise if nothing else has
// settled it yet, then drains whatever continuation was waiting on it.
func breakPromise[T any](s *sharedState[T]) {
	if s.ready() {
		return
	}
	s.setError(ErrBrokenPromise)
	trampoline.Run(s.takeContinuation())
}

// takeState extracts p's Shared State, disarms the finalizer, and
// invalidates p.
func (p *Promise[T]) takeState() *sharedState[T] {
	if p.s == nil {
		panic(errNoState)
	}
	s := p.s
	p.s = nil
	if p.guard != nil {
		runtime.SetFinalizer(p.guard, nil)
		p.guard = nil
	}
	return s
}

// SetValue satisfies p's future with v, consuming p.
func (p *Promise[T]) SetValue(v T) {
	s := p.takeState()
	s.setValue(v)
	trampoline.Run(s.takeContinuation())
}

// SetError satisfies p's future with err, consuming p.
func (p *Promise[T]) SetError(err error) {
	s := p.takeState()
	s.setError(err)
	trampoline.Run(s.takeContinuation())
}

// Discard satisfies p's future with ErrBrokenPromise, consuming p. Prefer
// this over letting an unsatisfied Promise simply go out of scope: it
// resolves the future deterministically instead of waiting on GC.
func (p *Promise[T]) Discard() {
	s := p.takeState()
	s.setError(ErrBrokenPromise)
	trampoline.Run(s.takeContinuation())
}

// Resolve returns an already-settled Future carrying v.
func Resolve[T any](v T) Future[T] {
	s := newSharedState[T]()
	s.setValue(v)
	return newFuture(s)
}

// Reject returns an already-settled Future carrying err.
func Reject[T any](err error) Future[T] {
	s := newSharedState[T]()
	s.setError(err)
	return newFuture(s)
}
