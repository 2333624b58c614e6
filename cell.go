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

import "github.com/eiband/promise/internal/cellstate"

// cell is the ternary Result Cell: Empty, holding a Value, or holding an
// Error. The zero value is Empty, so a cell never needs explicit
// initialization.
//
// Once a cell leaves Empty it never returns to it, and each of the two
// possible transitions happens at most once. Both are enforced here by
// panicking on a set call against a non-Empty cell, rather than silently
// overwriting it.
type cell[T any] struct {
	tag   cellstate.Tag
	value T
	err   error
}

// set writes v into the cell. The cell must be Empty.
func (c *cell[T]) set(v T) {
	if !cellstate.IsEmpty(c.tag) {
		panic(errCellAlreadySet)
	}
	c.tag = cellstate.Value
	c.value = v
}

// setErr writes err into the cell. The cell must be Empty.
func (c *cell[T]) setErr(err error) {
	if !cellstate.IsEmpty(c.tag) {
		panic(errCellAlreadySet)
	}
	c.tag = cellstate.Error
	c.err = err
}

// isSet reports whether the cell has left Empty.
func (c *cell[T]) isSet() bool {
	return !cellstate.IsEmpty(c.tag)
}

// take moves the cell's contents out. The cell's own copies are cleared so
// the cell does not keep the value or error reachable after the one
// continuation entitled to it has read them.
func (c *cell[T]) take() (tag cellstate.Tag, value T, err error) {
	tag, value, err = c.tag, c.value, c.err
	var zero T
	c.value = zero
	c.err = nil
	return
}
