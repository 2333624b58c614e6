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
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settle[T any](v T) Future[T] {
	return Resolve(v)
}

func TestThenOnReadyFutureRunsImmediately(t *testing.T) {
	src := settle(3)
	f := Then(&src, func(v int) int { return v * 2 })
	assert.True(t, f.Ready())
}

func TestThenMapsValueAndPropagatesError(t *testing.T) {
	src := settle(3)
	f := Then(&src, strconv.Itoa)
	v, err := drain(f)
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	sentinel := errors.New("boom")
	called := false
	rejected := Reject[int](sentinel)
	f2 := Then(&rejected, func(v int) int {
		called = true
		return v
	})
	_, err2 := drain(f2)
	assert.False(t, called)
	assert.Equal(t, sentinel, err2)
}

func TestThenOnPendingFutureFiresOnSettle(t *testing.T) {
	p, fut := NewPromise[int]()
	out := Then(&fut, func(v int) int { return v + 1 })
	assert.False(t, out.Ready())

	p.SetValue(41)
	assert.True(t, out.Ready())
	v, err := drain(out)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestThenCallbackPanicBecomesPanicError(t *testing.T) {
	src := settle(1)
	f := Then(&src, func(int) int { panic("kaboom") })
	_, err := drain(f)
	require.Error(t, err)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kaboom", pe.Value)
}

func TestCatchRecoversErrorAndPassesThroughValue(t *testing.T) {
	sentinel := errors.New("boom")
	rejected := Reject[int](sentinel)
	recovered := Catch(&rejected, func(err error) int { return -1 })
	v, err := drain(recovered)
	require.NoError(t, err)
	assert.Equal(t, -1, v)

	fulfilled := settle(5)
	untouched := Catch(&fulfilled, func(error) int { return -1 })
	v2, err2 := drain(untouched)
	require.NoError(t, err2)
	assert.Equal(t, 5, v2)
}

func TestThenComposeFlattensInnerFuture(t *testing.T) {
	src := settle(2)
	f := ThenCompose(&src, func(v int) Future[string] {
		return settle(strconv.Itoa(v * 10))
	})
	v, err := drain(f)
	require.NoError(t, err)
	assert.Equal(t, "20", v)
}

func TestThenComposeWithPendingInnerFuture(t *testing.T) {
	innerP, innerF := NewPromise[string]()
	src := settle(1)
	f := ThenCompose(&src, func(int) Future[string] { return innerF })
	assert.False(t, f.Ready())

	innerP.SetValue("done")
	v, err := drain(f)
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}

func TestThenComposeRejectsInvalidFuture(t *testing.T) {
	src := settle(1)
	f := ThenCompose(&src, func(int) Future[string] { return Future[string]{} })
	_, err := drain(f)
	assert.ErrorIs(t, err, ErrInvalidFuture)
}

func TestCatchComposeFlattensInnerFuture(t *testing.T) {
	sentinel := errors.New("boom")
	rejected := Reject[int](sentinel)
	f := CatchCompose(&rejected, func(error) Future[int] {
		return settle(7)
	})
	v, err := drain(f)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestThenOnConsumedFuturePanics(t *testing.T) {
	f := settle(1)
	Then(&f, func(int) int { return 0 })
	assert.Panics(t, func() {
		Then(&f, func(int) int { return 0 })
	})
}

func TestThenNilCallbackPanics(t *testing.T) {
	src := settle(1)
	assert.Panics(t, func() {
		Then(&src, (func(int) int)(nil))
	})
}

// TestDeepChainDoesNotOverflowStack builds a long chain of Then calls on an
// already-ready future and checks that it completes with the right count.
// Each Then finds its source already settled and dispatches its one
// continuation on the spot, so no more than one continuation is ever
// pending at a time.
func TestDeepChainDoesNotOverflowStack(t *testing.T) {
	const n = 100000
	f := settle(0)
	for i := 0; i < n; i++ {
		f = Then(&f, func(v int) int { return v + 1 })
	}
	v, err := drain(f)
	require.NoError(t, err)
	assert.Equal(t, n, v)
}

func TestThenVoidRunsSideEffectAndDiscardsResult(t *testing.T) {
	cases := []struct {
		name     string
		src      Future[int]
		wantRuns bool
		wantErr  error
	}{
		{name: "value", src: settle(7), wantRuns: true},
		{name: "error", src: Reject[int](errors.New("boom")), wantRuns: false, wantErr: errors.New("boom")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ran := false
			f := ThenVoid(&tc.src, func(int) { ran = true })
			_, err := drain(f)
			assert.Equal(t, tc.wantRuns, ran)
			if tc.wantErr != nil {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestThenComposeVoidFlattensInnerVoidFuture(t *testing.T) {
	src := settle(3)
	innerRan := false
	f := ThenComposeVoid(&src, func(int) Future[Void] {
		return ThenVoid(ptr(settle(0)), func(int) { innerRan = true })
	})
	_, err := drain(f)
	require.NoError(t, err)
	assert.True(t, innerRan)
}

// ptr is a small helper for composing a Future literal straight into a
// call that needs its address, mirroring the *Future[T] parameter shape
// every consuming operation uses.
func ptr[T any](f Future[T]) *Future[T] {
	return &f
}

// drain reads a settled future's outcome for test assertions by attaching
// a terminal Then/Catch pair and capturing what reaches it; this keeps
// tests from needing a blocking read the package itself never offers.
func drain[T any](f Future[T]) (T, error) {
	var value T
	var outErr error
	captured := Then(&f, func(v T) T {
		value = v
		return v
	})
	Catch(&captured, func(err error) T {
		outErr = err
		var zero T
		return zero
	})
	return value, outErr
}
