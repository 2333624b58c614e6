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

// sharedState is the rendezvous between exactly one Future handle and one
// Promise handle (or, once the promise has settled, between the state and
// its outstanding continuation while that continuation completes).
//
// It owns a Result Cell and at most one pending continuation. The
// combination of an attached continuation and a settled cell is transient
// and never allowed to sit at rest: whenever a continuation is attached and
// the cell becomes set, chain or takeContinuation hands the continuation
// straight back to its caller so it can be fed into the trampoline, rather
// than leaving it sitting in the slot next to a settled cell.
type sharedState[T any] struct {
	cell cell[T]
	cont trampoline.Continuation
}

func newSharedState[T any]() *sharedState[T] {
	return &sharedState[T]{}
}

// ready reports whether the cell has left Empty.
func (s *sharedState[T]) ready() bool {
	return s.cell.isSet()
}

// setValue writes v into the cell. It does not dispatch anything; the
// caller is responsible for draining takeContinuation() through the
// trampoline afterward.
func (s *sharedState[T]) setValue(v T) {
	s.cell.set(v)
}

// setError writes err into the cell. Like setValue, it does not dispatch.
func (s *sharedState[T]) setError(err error) {
	s.cell.setErr(err)
}

// take moves the cell's contents out. The caller must only call this once
// the cell is known to be set.
func (s *sharedState[T]) take() (tag cellstate.Tag, value T, err error) {
	return s.cell.take()
}

// takeContinuation returns and clears the continuation slot. The caller
// must guarantee the cell is already set: this is the satisfaction-side
// removal path.
func (s *sharedState[T]) takeContinuation() trampoline.Continuation {
	c := s.cont
	s.cont = nil
	return c
}

// chain installs c into the slot if the cell is still Empty. If the cell is
// already set, it returns c unchanged instead of installing it, so the
// caller can feed it into the trampoline immediately rather than dispatch
// it inline.
//
// It panics if a continuation is already installed; that can only happen
// if more than one continuation is attached to this state, which is a
// programming error the single-shot Future handle is supposed to prevent.
func (s *sharedState[T]) chain(c trampoline.Continuation) trampoline.Continuation {
	if s.cell.isSet() {
		return c
	}
	if s.cont != nil {
		panic(errContinuationAttached)
	}
	s.cont = c
	return nil
}
