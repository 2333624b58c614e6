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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromiseSetValueResolvesFuture(t *testing.T) {
	p, f := NewPromise[int]()
	p.SetValue(10)
	v, err := drain(f)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestPromiseSetErrorResolvesFuture(t *testing.T) {
	p, f := NewPromise[int]()
	sentinel := assert.AnError
	p.SetError(sentinel)
	_, err := drain(f)
	assert.Equal(t, sentinel, err)
}

func TestPromiseSetValueTwicePanics(t *testing.T) {
	p, _ := NewPromise[int]()
	p.SetValue(1)
	assert.Panics(t, func() { p.SetValue(2) })
}

func TestPromiseDiscardResolvesToBrokenPromise(t *testing.T) {
	p, f := NewPromise[int]()
	p.Discard()
	_, err := drain(f)
	assert.ErrorIs(t, err, ErrBrokenPromise)
}

func TestResolveProducesReadyFulfilledFuture(t *testing.T) {
	f := Resolve(5)
	assert.True(t, f.Ready())
	v, err := drain(f)
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestRejectProducesReadyRejectedFuture(t *testing.T) {
	sentinel := assert.AnError
	f := Reject[int](sentinel)
	assert.True(t, f.Ready())
	_, err := drain(f)
	assert.Equal(t, sentinel, err)
}

// TestAbandonedPromiseBreaksOnGC exercises the finalizer safety net: a
// Promise dropped without being satisfied must eventually resolve its
// future to ErrBrokenPromise once collected.
func TestAbandonedPromiseBreaksOnGC(t *testing.T) {
	f := abandonPromise()

	var err error
	for i := 0; i < 10 && err == nil; i++ {
		runtime.GC()
		if f.Ready() {
			_, err = drain(f)
			break
		}
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBrokenPromise)
}

// abandonPromise returns a future whose promise has already gone out of
// scope, so the only reference keeping its Shared State alive is the
// future itself (and the finalizer-armed guard).
func abandonPromise() Future[int] {
	_, f := NewPromise[int]()
	return f
}
