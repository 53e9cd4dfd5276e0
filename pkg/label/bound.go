// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package label

import (
	"cmp"
	"fmt"
)

// BoundKind classifies the bound attached to a dereference.
type BoundKind uint8

const (
	// NO_BOUND indicates a single access.
	NO_BOUND BoundKind = iota
	// UNBOUNDED indicates an array access of unknown length.
	UNBOUNDED
	// NULL_TERMINATED indicates an array access terminated by a zero element.
	NULL_TERMINATED
	// FIXED indicates an array access of known length.
	FIXED
)

// Bound describes how many consecutive elements a dereference may cover.
type Bound struct {
	kind BoundKind
	// Number of elements (only meaningful for FIXED bounds).
	count uint64
}

// NoBound constructs the bound of a plain (non-array) dereference.
func NoBound() Bound { return Bound{NO_BOUND, 0} }

// Unbounded constructs the bound of an array of unknown length.
func Unbounded() Bound { return Bound{UNBOUNDED, 0} }

// NullTerminated constructs the bound of a null-terminated array.
func NullTerminated() Bound { return Bound{NULL_TERMINATED, 0} }

// FixedBound constructs the bound of an array of n elements.
func FixedBound(n uint64) Bound { return Bound{FIXED, n} }

// Kind returns the kind of this bound.
func (p Bound) Kind() BoundKind { return p.kind }

// Count returns the number of elements of a fixed bound.
func (p Bound) Count() uint64 {
	if p.kind != FIXED {
		panic("bound has no count")
	}
	//
	return p.count
}

// Cmp orders bounds first by kind, and then by count.
func (p Bound) Cmp(other Bound) int {
	if c := cmp.Compare(p.kind, other.kind); c != 0 {
		return c
	}
	//
	return cmp.Compare(p.count, other.count)
}

func (p Bound) String() string {
	switch p.kind {
	case NO_BOUND:
		return ""
	case UNBOUNDED:
		return "[*]"
	case NULL_TERMINATED:
		return "[nullterm]"
	case FIXED:
		return fmt.Sprintf("[%d]", p.count)
	}
	//
	panic(fmt.Sprintf("unknown bound kind (%d)", p.kind))
}
