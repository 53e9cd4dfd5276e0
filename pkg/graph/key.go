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
package graph

import (
	"cmp"

	"github.com/consensys/go-retypd/pkg/label"
	"github.com/consensys/go-retypd/pkg/schema"
	"github.com/consensys/go-retypd/pkg/util/collection/hash"
)

// Key identifies a node of the constraint graph.  Every derived type variable
// gives rise to two nodes: one covariant and one contravariant.  Subtyping
// flows forwards through covariant nodes, and backwards through contravariant
// ones.
type Key struct {
	Variable schema.DerivedTypeVariable
	Variance label.Variance
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ hash.Hasher[Key] = Key{}

// NewKey constructs a new key for a given variable and variance.
func NewKey(variable schema.DerivedTypeVariable, variance label.Variance) Key {
	return Key{variable, variance}
}

// Inverse returns the key of the same variable with the opposite variance.
func (p Key) Inverse() Key {
	return Key{p.Variable, p.Variance.Flip()}
}

// Equals implementation for the hash.Hasher interface.
func (p Key) Equals(other Key) bool {
	return p.Variance == other.Variance && p.Variable.Equals(other.Variable)
}

// Hash implementation for the hash.Hasher interface.
func (p Key) Hash() uint64 {
	return hash.Combine(p.Variable.Hash(), uint64(p.Variance))
}

// Cmp orders keys by variable and then by variance.
func (p Key) Cmp(other Key) int {
	if c := p.Variable.Cmp(other.Variable); c != 0 {
		return c
	}
	//
	return cmp.Compare(p.Variance, other.Variance)
}

func (p Key) String() string {
	return p.Variable.String() + p.Variance.String()
}
