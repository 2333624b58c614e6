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

// Package promise provides a single-producer/single-consumer promise and
// future pair, in the spirit of std::promise/std::future, built around a
// ternary result cell rather than a channel.
//
// A Future[T] is in exactly one of three states at any time:
// Pending: no Value or Error has been written to it yet.
// Fulfilled: it holds a Value of type T.
// Rejected: it holds an Error.
//
// Once a Future leaves Pending it never returns to it, and it leaves
// Pending at most once: the producer side, Promise[T], enforces this by
// panicking on any attempt to call SetValue or SetError a second time.
//
//
// Handles:-
//
// * Future[T] and Promise[T] are move-only handles onto a single shared
// state. Each operation that reads a handle — Then, ThenCompose, Catch,
// or CatchCompose on a Future; SetValue, SetError, or Discard on a
// Promise — consumes it, leaving the handle invalid for any further use.
// There is no blocking read on Future[T] itself; SyncedFuture[T]'s Wait
// is the one place this module allows one.
//
// * The zero value of either handle is invalid. Passing one to any
// consuming operation panics with a *MisuseError, the same way passing a
// consumed handle does; Future's Valid and Ready only report false.
//
//
// Continuations:-
//
// * Then and Catch run a single callback once a future settles: Then on a
// Fulfilled future, Catch on a Rejected one. The other case passes through
// to the returned future unchanged.
//
// * ThenCompose and CatchCompose are their flattening counterparts: the
// callback returns a Future[R] instead of an R, and that inner future's
// eventual outcome becomes the returned future's outcome directly, instead
// of nesting one future inside another.
//
// * A callback that panics has its panic recovered and turned into a
// *PanicError rejecting the downstream future, instead of unwinding into
// whichever goroutine happens to be running the dispatch at that moment.
//
// * Continuations registered on an already-settled future, and long chains
// of futures that settle each other in turn, both dispatch through a single
// iterative loop rather than recursive calls, so a chain's length is bounded
// only by memory, never by stack depth.
//
//
// Broken promises:-
//
// * A Promise dropped without ever calling SetValue, SetError, or Discard
// on it resolves its future to ErrBrokenPromise once the Promise is
// collected. Discard does the same thing deterministically, and should be
// preferred wherever the caller knows in advance it will not satisfy the
// promise.
package promise
