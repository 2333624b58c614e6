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

// Package trampoline holds the single iterative dispatch loop that every
// continuation in the promise/future core funnels through.
//
// It is split out of the main package because it is, deliberately, the one
// piece of the design with no generic type parameters: a continuation chain
// walks across any number of distinct Future[T] instantiations as it runs
// (a Future[int]'s continuation hands off to a Future[string]'s, and so on),
// so the loop itself cannot be generic over T without defeating the point.
// Continuation erases its concrete source/destination types behind a single
// method; this package only ever sees that erased shape.
package trampoline

// Continuation is one unit of deferred work: a continuation bound to a
// source Shared State and a destination Shared State, waiting for its
// source to settle.
//
// Dispatch consumes the (already-settled) source cell, writes the outcome
// into the destination, and returns whatever continuation should run next —
// typically the continuation that was waiting in the destination's slot, if
// any. A nil return ends the chain at that point.
type Continuation interface {
	Dispatch() Continuation
}

// Run drains c and everything it leads to, iteratively.
//
// This is the design's only dispatch path. Every call site that settles a
// Shared State — a promise satisfaction, a then/catch registered on an
// already-ready future, an attach-continuation completing — funnels its
// follow-up work through Run instead of invoking Dispatch itself, so that a
// chain of N already-ready continuations never grows the call stack, no
// matter how large N is.
func Run(c Continuation) {
	for c != nil {
		c = c.Dispatch()
	}
}
