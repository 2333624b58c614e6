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
	"github.com/eiband/promise/internal/syncstate"
	"github.com/eiband/promise/internal/trampoline"
)

// SyncedPromise and SyncedFuture are the collaborator variant of Promise
// and Future: a producer goroutine and a consumer goroutine that don't
// otherwise coordinate, rather than the same goroutine attaching a
// continuation before or after a value arrives.
//
// Where Future/Promise never block (attaching a continuation to a settled
// future dispatches it immediately, in the attaching goroutine), SyncedFuture
// adds exactly one blocking operation, Wait, for the case where the
// consumer genuinely has nothing else useful to do until the producer's
// goroutine finishes. SyncedThen, SyncedThenCompose, SyncedCatch, and
// SyncedCatchCompose run through the same trampoline dispatch the core
// uses, and the same panic-to-error and single-shot-handle rules apply;
// the only difference from the core is that the handoff between settling
// a state and dispatching its continuation crosses a mutex instead of
// happening inline on one goroutine.
type SyncedPromise[T any] struct {
	s *syncstate.State
}

// SyncedFuture is SyncedPromise's paired read handle.
type SyncedFuture[T any] struct {
	s *syncstate.State
}

// NewSyncedPromise creates a fresh mutex-guarded state and returns the
// SyncedPromise/SyncedFuture pair bound to it.
func NewSyncedPromise[T any]() (SyncedPromise[T], SyncedFuture[T]) {
	s := syncstate.New()
	return SyncedPromise[T]{s: s}, SyncedFuture[T]{s: s}
}

// SetValue satisfies p's future with v. Unlike Promise.SetValue, this may
// be called from a different goroutine than the one that created p.
func (p *SyncedPromise[T]) SetValue(v T) {
	trampoline.Run(p.s.SetValue(v))
}

// SetError satisfies p's future with err.
func (p *SyncedPromise[T]) SetError(err error) {
	trampoline.Run(p.s.SetError(err))
}

// Valid reports whether f still refers to a state.
func (f *SyncedFuture[T]) Valid() bool {
	return f.s != nil
}

// Ready reports whether f's outcome is already available, without
// blocking.
func (f *SyncedFuture[T]) Ready() bool {
	_, _, _, ready := f.s.Peek()
	return ready
}

// Wait blocks until f's producer calls SetValue or SetError, then returns
// the outcome. It is the one place this variant allows a blocking read;
// the core Future type never does.
func (f *SyncedFuture[T]) Wait() (T, error) {
	tag, value, err := f.s.Wait()
	if tag == syncstate.Error {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

// takeState extracts f's State and invalidates f, the synced variant's
// equivalent of Future.takeState.
func (f *SyncedFuture[T]) takeState() *syncstate.State {
	if f.s == nil {
		panic(errNoState)
	}
	s := f.s
	f.s = nil
	return s
}

// syncedAttachContinuation forwards whatever lands in src straight into
// dst, unchanged. Unlike the core's attachContinuation, one type serves
// every instantiation here, since syncstate.State has already erased its
// payload to `any`.
type syncedAttachContinuation struct {
	src *syncstate.State
	dst *syncstate.State
}

func (c *syncedAttachContinuation) Dispatch() trampoline.Continuation {
	tag, v, err, _ := c.src.Peek()
	if tag == syncstate.Error {
		return c.dst.SetError(err)
	}
	return c.dst.SetValue(v)
}

func callSafelySyncedCompose[T, R any](fn func(T) SyncedFuture[R], v T) (f SyncedFuture[R], err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	f = fn(v)
	return
}

// syncedThenContinuation is thenContinuation's synced counterpart.
type syncedThenContinuation[T, R any] struct {
	src *syncstate.State
	dst *syncstate.State
	fn  func(T) R
}

func (c *syncedThenContinuation[T, R]) Dispatch() trampoline.Continuation {
	tag, v, err, _ := c.src.Peek()
	if tag == syncstate.Error {
		return c.dst.SetError(err)
	}
	r, perr := callSafelyThen(c.fn, v.(T))
	if perr != nil {
		return c.dst.SetError(perr)
	}
	return c.dst.SetValue(r)
}

// syncedThenComposeContinuation is thenComposeContinuation's synced
// counterpart.
type syncedThenComposeContinuation[T, R any] struct {
	src *syncstate.State
	dst *syncstate.State
	fn  func(T) SyncedFuture[R]
}

func (c *syncedThenComposeContinuation[T, R]) Dispatch() trampoline.Continuation {
	tag, v, err, _ := c.src.Peek()
	if tag == syncstate.Error {
		return c.dst.SetError(err)
	}
	inner, perr := callSafelySyncedCompose(c.fn, v.(T))
	if perr != nil {
		return c.dst.SetError(perr)
	}
	if !inner.Valid() {
		return c.dst.SetError(ErrInvalidFuture)
	}
	innerState := inner.takeState()
	return innerState.Chain(&syncedAttachContinuation{src: innerState, dst: c.dst})
}

// syncedCatchContinuation is catchContinuation's synced counterpart.
type syncedCatchContinuation[T any] struct {
	src *syncstate.State
	dst *syncstate.State
	fn  func(error) T
}

func (c *syncedCatchContinuation[T]) Dispatch() trampoline.Continuation {
	tag, v, err, _ := c.src.Peek()
	if tag != syncstate.Error {
		return c.dst.SetValue(v)
	}
	r, perr := callSafelyCatch(c.fn, err)
	if perr != nil {
		return c.dst.SetError(perr)
	}
	return c.dst.SetValue(r)
}

// syncedCatchComposeContinuation is catchComposeContinuation's synced
// counterpart.
type syncedCatchComposeContinuation[T any] struct {
	src *syncstate.State
	dst *syncstate.State
	fn  func(error) SyncedFuture[T]
}

func (c *syncedCatchComposeContinuation[T]) Dispatch() trampoline.Continuation {
	tag, v, err, _ := c.src.Peek()
	if tag != syncstate.Error {
		return c.dst.SetValue(v)
	}
	inner, perr := callSafelySyncedCompose(c.fn, err)
	if perr != nil {
		return c.dst.SetError(perr)
	}
	if !inner.Valid() {
		return c.dst.SetError(ErrInvalidFuture)
	}
	innerState := inner.takeState()
	return innerState.Chain(&syncedAttachContinuation{src: innerState, dst: c.dst})
}

// SyncedThen is Then for the collaborator variant: it consumes f and
// returns a SyncedFuture[R] that resolves once f does, with fn applied to
// a Value outcome. fn must not be nil.
func SyncedThen[T, R any](f *SyncedFuture[T], fn func(T) R) SyncedFuture[R] {
	if fn == nil {
		panic(errNilCallback)
	}
	src := f.takeState()
	dst := syncstate.New()
	trampoline.Run(src.Chain(&syncedThenContinuation[T, R]{src: src, dst: dst, fn: fn}))
	return SyncedFuture[R]{s: dst}
}

// SyncedThenCompose is ThenCompose for the collaborator variant.
func SyncedThenCompose[T, R any](f *SyncedFuture[T], fn func(T) SyncedFuture[R]) SyncedFuture[R] {
	if fn == nil {
		panic(errNilCallback)
	}
	src := f.takeState()
	dst := syncstate.New()
	trampoline.Run(src.Chain(&syncedThenComposeContinuation[T, R]{src: src, dst: dst, fn: fn}))
	return SyncedFuture[R]{s: dst}
}

// SyncedCatch is Catch for the collaborator variant.
func SyncedCatch[T any](f *SyncedFuture[T], fn func(error) T) SyncedFuture[T] {
	if fn == nil {
		panic(errNilCallback)
	}
	src := f.takeState()
	dst := syncstate.New()
	trampoline.Run(src.Chain(&syncedCatchContinuation[T]{src: src, dst: dst, fn: fn}))
	return SyncedFuture[T]{s: dst}
}

// SyncedCatchCompose is CatchCompose for the collaborator variant.
func SyncedCatchCompose[T any](f *SyncedFuture[T], fn func(error) SyncedFuture[T]) SyncedFuture[T] {
	if fn == nil {
		panic(errNilCallback)
	}
	src := f.takeState()
	dst := syncstate.New()
	trampoline.Run(src.Chain(&syncedCatchComposeContinuation[T]{src: src, dst: dst, fn: fn}))
	return SyncedFuture[T]{s: dst}
}
