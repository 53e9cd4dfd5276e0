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

import "fmt"

// Variance determines the direction in which subtyping propagates through a
// given label.  Covariant labels preserve the direction (i.e. if x <= y then
// x.l <= y.l), whilst contravariant labels reverse it (i.e. if x <= y then y.l
// <= x.l).
type Variance uint8

const (
	// COVARIANT indicates subtyping is preserved.
	COVARIANT Variance = iota
	// CONTRAVARIANT indicates subtyping is reversed.
	CONTRAVARIANT
)

// Compose two variances together.  This follows the usual sign rule, such that
// composing two contravariant steps gives a covariant one.
func (p Variance) Compose(other Variance) Variance {
	if p == other {
		return COVARIANT
	}
	//
	return CONTRAVARIANT
}

// Flip returns the opposite variance.
func (p Variance) Flip() Variance {
	return p.Compose(CONTRAVARIANT)
}

func (p Variance) String() string {
	switch p {
	case COVARIANT:
		return "⊕"
	case CONTRAVARIANT:
		return "⊖"
	}
	//
	panic(fmt.Sprintf("unknown variance (%d)", p))
}
