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

// Package syncstate is the mutex-guarded counterpart of the core's shared
// state, for use when a promise's producer and a future's consumer run on
// different goroutines and need to wait on a settlement they did not cause
// themselves.
//
// It is deliberately a much smaller surface than a general-purpose atomic
// or lock-free state machine: one mutex guards a three-way tag plus at
// most one pending continuation, and the only two races it needs to
// settle are "chain a continuation against an already-settled state" and
// "settle a state against an already-chained continuation" — the same
// S1/S2 rendezvous the single-threaded core resolves without any locking
// at all, just reproduced under a lock for the case where settlement and
// attachment can genuinely happen on different goroutines. SetValue and
// SetError move the continuation out from under the lock and return it,
// so the trampoline dispatch that follows never runs while the lock is
// held.
package syncstate

import (
	"sync"

	"github.com/eiband/promise/internal/trampoline"
)

// Tag mirrors cellstate.Tag; kept separate so this package has no
// compile-time dependency on the single-threaded core.
type Tag uint8

const (
	Empty Tag = iota
	Value
	Error
)

// State is a mutex-guarded rendezvous between one producer goroutine and
// one consumer goroutine. Value and Error are stored as `any` since this
// package is not generic — callers downcast after Wait or Peek returns,
// the same way the trampoline's Continuation interface erases its
// concrete Future[T] types.
//
// Besides the tag/value/err triple, State also holds at most one pending
// continuation, the same rendezvous the single-threaded core's shared
// state resolves without a lock: SetValue/SetError and Chain race to be
// the one that finds the state already on the other side, and whichever
// one is second is the one responsible for handing the continuation to
// the trampoline.
type State struct {
	mu    sync.Mutex
	cond  *sync.Cond
	tag   Tag
	value any
	err   error
	cont  trampoline.Continuation
}

// New returns a fresh, Empty State.
func New() *State {
	s := &State{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// SetValue transitions the state to Value, waking any goroutine blocked in
// Wait, and returns whatever continuation was already attached so the
// caller can run it through the trampoline after the lock has been
// released. It panics if the state is not Empty.
func (s *State) SetValue(v any) trampoline.Continuation {
	s.mu.Lock()
	if s.tag != Empty {
		s.mu.Unlock()
		panic("syncstate: state already settled")
	}
	s.tag = Value
	s.value = v
	cont := s.cont
	s.cont = nil
	s.cond.Broadcast()
	s.mu.Unlock()
	return cont
}

// SetError transitions the state to Error, waking any goroutine blocked in
// Wait, and returns whatever continuation was already attached, the same
// way SetValue does. It panics if the state is not Empty.
func (s *State) SetError(err error) trampoline.Continuation {
	s.mu.Lock()
	if s.tag != Empty {
		s.mu.Unlock()
		panic("syncstate: state already settled")
	}
	s.tag = Error
	s.err = err
	cont := s.cont
	s.cont = nil
	s.cond.Broadcast()
	s.mu.Unlock()
	return cont
}

// Chain installs c as this state's continuation if the state is still
// Empty. If the state has already settled, it hands c straight back to
// the caller instead of installing it, so the caller can feed it into
// the trampoline immediately rather than leave it sitting next to a
// settled state.
//
// It panics if a continuation is already installed.
func (s *State) Chain(c trampoline.Continuation) trampoline.Continuation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tag != Empty {
		return c
	}
	if s.cont != nil {
		panic("syncstate: a continuation is already attached to this state")
	}
	s.cont = c
	return nil
}

// Wait blocks until the state leaves Empty, then returns its outcome.
func (s *State) Wait() (Tag, any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.tag == Empty {
		s.cond.Wait()
	}
	return s.tag, s.value, s.err
}

// Peek reports the state's outcome without blocking, and whether it was
// available yet.
func (s *State) Peek() (tag Tag, value any, err error, ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tag == Empty {
		return Empty, nil, nil, false
	}
	return s.tag, s.value, s.err, true
}
