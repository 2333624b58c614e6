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
	"github.com/eiband/promise/internal/cellstate"
	"github.com/eiband/promise/internal/trampoline"
)

// callSafelyThen runs fn and turns a panic into a *PanicError instead of
// letting it propagate into the trampoline loop.
func callSafelyThen[T, R any](fn func(T) R, v T) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	r = fn(v)
	return
}

func callSafelyThenCompose[T, R any](fn func(T) Future[R], v T) (f Future[R], err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	f = fn(v)
	return
}

func callSafelyCatch[T any](fn func(error) T, e error) (r T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	r = fn(e)
	return
}

func callSafelyCatchCompose[T any](fn func(error) Future[T], e error) (f Future[T], err error) {
	defer func() {
		if p := recover(); p != nil {
			err = newPanicError(p)
		}
	}()
	f = fn(e)
	return
}

// attachContinuation forwards whatever lands in src straight into dst,
// unchanged. It is the mechanism that makes then/catch transparently
// flatten a callback's returned Future into the destination future instead
// of producing a Future[Future[R]]: once the inner future settles, this
// continuation is what carries its outcome the rest of the way to the
// destination.
type attachContinuation[R any] struct {
	src *sharedState[R]
	dst *sharedState[R]
}

func (c *attachContinuation[R]) Dispatch() trampoline.Continuation {
	tag, v, err := c.src.take()
	if cellstate.IsError(tag) {
		c.dst.setError(err)
	} else {
		c.dst.setValue(v)
	}
	return c.dst.takeContinuation()
}

// thenContinuation implements the value-transforming half of then: it runs
// only when src settled with a Value, mapping it through fn; an Error
// passes through to dst untouched.
type thenContinuation[T, R any] struct {
	src *sharedState[T]
	dst *sharedState[R]
	fn  func(T) R
}

func (c *thenContinuation[T, R]) Dispatch() trampoline.Continuation {
	tag, v, err := c.src.take()
	if cellstate.IsError(tag) {
		c.dst.setError(err)
		return c.dst.takeContinuation()
	}
	r, perr := callSafelyThen(c.fn, v)
	if perr != nil {
		c.dst.setError(perr)
	} else {
		c.dst.setValue(r)
	}
	return c.dst.takeContinuation()
}

// thenComposeContinuation is thenContinuation's flattening counterpart: fn
// returns a Future[R] rather than an R, so its outcome is attached to dst
// through attachContinuation instead of written directly.
type thenComposeContinuation[T, R any] struct {
	src *sharedState[T]
	dst *sharedState[R]
	fn  func(T) Future[R]
}

func (c *thenComposeContinuation[T, R]) Dispatch() trampoline.Continuation {
	tag, v, err := c.src.take()
	if cellstate.IsError(tag) {
		c.dst.setError(err)
		return c.dst.takeContinuation()
	}
	inner, perr := callSafelyThenCompose(c.fn, v)
	if perr != nil {
		c.dst.setError(perr)
		return c.dst.takeContinuation()
	}
	if !inner.Valid() {
		c.dst.setError(ErrInvalidFuture)
		return c.dst.takeContinuation()
	}
	innerState := inner.takeState()
	return innerState.chain(&attachContinuation[R]{src: innerState, dst: c.dst})
}

// catchContinuation implements the error-recovering half of catch: it runs
// only when src settled with an Error, recovering through fn; a Value
// passes through to dst untouched.
type catchContinuation[T any] struct {
	src *sharedState[T]
	dst *sharedState[T]
	fn  func(error) T
}

func (c *catchContinuation[T]) Dispatch() trampoline.Continuation {
	tag, v, err := c.src.take()
	if !cellstate.IsError(tag) {
		c.dst.setValue(v)
		return c.dst.takeContinuation()
	}
	r, perr := callSafelyCatch(c.fn, err)
	if perr != nil {
		c.dst.setError(perr)
	} else {
		c.dst.setValue(r)
	}
	return c.dst.takeContinuation()
}

// catchComposeContinuation is catchContinuation's flattening counterpart:
// fn returns a Future[T] rather than a T.
type catchComposeContinuation[T any] struct {
	src *sharedState[T]
	dst *sharedState[T]
	fn  func(error) Future[T]
}

func (c *catchComposeContinuation[T]) Dispatch() trampoline.Continuation {
	tag, v, err := c.src.take()
	if !cellstate.IsError(tag) {
		c.dst.setValue(v)
		return c.dst.takeContinuation()
	}
	inner, perr := callSafelyCatchCompose(c.fn, err)
	if perr != nil {
		c.dst.setError(perr)
		return c.dst.takeContinuation()
	}
	if !inner.Valid() {
		c.dst.setError(ErrInvalidFuture)
		return c.dst.takeContinuation()
	}
	innerState := inner.takeState()
	return innerState.chain(&attachContinuation[T]{src: innerState, dst: c.dst})
}
