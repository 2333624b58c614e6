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
	"fmt"
	"runtime"

	"github.com/pkg/errors"
)

// MisuseError reports a violation of the module's single-shot usage
// contract: a consuming operation called on an already-consumed (or
// zero-value) handle, a second continuation attached to one Shared State,
// or a promise satisfied twice.
//
// These are programming errors, not runtime failures, so every instance
// here is raised as a panic at the call site rather than returned.
type MisuseError struct {
	msg string
}

func (e *MisuseError) Error() string { return "promise: " + e.msg }

func misuse(msg string) *MisuseError { return &MisuseError{msg: msg} }

var (
	errNoState              = misuse("operation on an invalid handle (zero value, or already consumed by then/catch/set_value/set_exception)")
	errNilCallback          = misuse("callback must not be nil")
	errContinuationAttached = misuse("a continuation is already attached to this state")
	errCellAlreadySet       = misuse("internal: result cell written to twice")
)

var (
	// ErrBrokenPromise is delivered to a future's continuation chain when
	// its paired promise is discarded, explicitly via Promise.Discard or by
	// garbage collection, before being satisfied.
	ErrBrokenPromise = errors.New("promise: broken promise")

	// ErrInvalidFuture is delivered downstream when a then/catch callback
	// returns a Future whose handle carries no state.
	ErrInvalidFuture = errors.New("promise: callback returned an invalid future")
)

// PanicError wraps a value recovered from a panicking then/catch callback,
// together with the stack at the point of the panic, so it can travel
// through the chain as an ordinary rejection instead of unwinding the
// caller.
//
// The captured frames are exposed the same way pkg/errors exposes them on
// its own wrapped errors, so %+v formatting behaves consistently across
// both.
type PanicError struct {
	Value   any
	callers []uintptr
}

func newPanicError(v any) *PanicError {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	return &PanicError{Value: v, callers: pcs[:n]}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("promise: callback panicked: %v", e.Value)
}

// StackTrace returns the stack captured when the panic was recovered.
func (e *PanicError) StackTrace() errors.StackTrace {
	frames := make(errors.StackTrace, len(e.callers))
	for i, pc := range e.callers {
		frames[i] = errors.Frame(pc)
	}
	return frames
}

func (e *PanicError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "promise: callback panicked: %v", e.Value)
			for _, f := range e.StackTrace() {
				fmt.Fprintf(s, "\n%+v", f)
			}
			return
		}
		fallthrough
	default:
		fmt.Fprint(s, e.Error())
	}
}
