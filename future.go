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

import "github.com/eiband/promise/internal/trampoline"

// Future is the read side of the promise/future pair: a move-only handle
// to a Shared State that will eventually hold a Value or an Error.
//
// A Future is valid exactly once: calling Then, ThenCompose, Catch, or
// CatchCompose on it consumes the handle, leaving it invalid for any
// further use. The zero value is itself invalid, the same way a zero-value
// sync.WaitGroup is usable only through its methods and never through its
// fields. There is no way to read a Future's outcome without attaching a
// continuation to it.
//
// Then, ThenCompose, Catch, and CatchCompose all take *Future[T] rather
// than Future[T]: Go methods can't introduce a new type parameter (the R in
// Then), so these have to be package-level functions, and a function can
// only invalidate the caller's own variable, rather than a throwaway copy
// of it, by taking that variable's address. Callers write Then(&f, fn),
// the same shape time.Time's unexported fields push callers toward even
// though time.Time is comparable by value.
type Future[T any] struct {
	s *sharedState[T]
}

func newFuture[T any](s *sharedState[T]) Future[T] {
	return Future[T]{s: s}
}

// Valid reports whether f still owns a Shared State, i.e. whether it has
// not yet been consumed by Then, ThenCompose, Catch, or CatchCompose.
func (f *Future[T]) Valid() bool {
	return f.s != nil
}

// Ready reports whether the future's result is already available. It does
// not consume f.
func (f *Future[T]) Ready() bool {
	return f.s != nil && f.s.ready()
}

// takeState extracts f's Shared State and invalidates f, enforcing the
// single-consumption rule shared by every operation below.
func (f *Future[T]) takeState() *sharedState[T] {
	if f.s == nil {
		panic(errNoState)
	}
	s := f.s
	f.s = nil
	return s
}

// Then maps f's value through fn once it settles, producing a Future[R]
// that resolves to fn's result or, if f settled with an Error, carries that
// Error through unchanged. It consumes f.
//
// fn must not be nil.
func Then[T, R any](f *Future[T], fn func(T) R) Future[R] {
	if fn == nil {
		panic(errNilCallback)
	}
	src := f.takeState()
	dst := newSharedState[R]()
	cont := src.chain(&thenContinuation[T, R]{src: src, dst: dst, fn: fn})
	trampoline.Run(cont)
	return newFuture(dst)
}

// ThenCompose is Then's flattening counterpart: fn returns a Future[R]
// rather than an R, and that inner future's eventual outcome becomes the
// result future's outcome directly, instead of nesting one future inside
// another. It consumes f.
func ThenCompose[T, R any](f *Future[T], fn func(T) Future[R]) Future[R] {
	if fn == nil {
		panic(errNilCallback)
	}
	src := f.takeState()
	dst := newSharedState[R]()
	cont := src.chain(&thenComposeContinuation[T, R]{src: src, dst: dst, fn: fn})
	trampoline.Run(cont)
	return newFuture(dst)
}

// Catch recovers f's Error through fn once it settles, producing a
// Future[T] that resolves to fn's result; a Value passes through
// unchanged. It consumes f.
//
// Catch's destination is fixed to T, the same type f already carries: Go
// has no supertype relation across distinct generic instantiations for it
// to widen to, and T is what the value-passthrough path returns anyway.
func Catch[T any](f *Future[T], fn func(error) T) Future[T] {
	if fn == nil {
		panic(errNilCallback)
	}
	src := f.takeState()
	dst := newSharedState[T]()
	cont := src.chain(&catchContinuation[T]{src: src, dst: dst, fn: fn})
	trampoline.Run(cont)
	return newFuture(dst)
}

// CatchCompose is Catch's flattening counterpart: fn returns a Future[T].
// It consumes f.
func CatchCompose[T any](f *Future[T], fn func(error) Future[T]) Future[T] {
	if fn == nil {
		panic(errNilCallback)
	}
	src := f.takeState()
	dst := newSharedState[T]()
	cont := src.chain(&catchComposeContinuation[T]{src: src, dst: dst, fn: fn})
	trampoline.Run(cont)
	return newFuture(dst)
}

// ThenVoid is Then specialized for callbacks that only perform a side
// effect and produce no value of their own.
func ThenVoid[T any](f *Future[T], fn func(T)) Future[Void] {
	if fn == nil {
		panic(errNilCallback)
	}
	return Then(f, func(v T) Void {
		fn(v)
		return Void{}
	})
}

// ThenComposeVoid is ThenCompose specialized for Future[Void] results.
func ThenComposeVoid[T any](f *Future[T], fn func(T) Future[Void]) Future[Void] {
	return ThenCompose(f, fn)
}
