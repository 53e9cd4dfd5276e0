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
	"strings"

	"github.com/consensys/go-retypd/pkg/util/collection/hash"
)

// FieldLabel represents an atomic step in the path of a derived type variable.
// For example, x.load.σ4@0 is reached from x via a load label followed by a
// four byte dereference at offset zero.  The set of field labels is closed.
type FieldLabel interface {
	// Variance of this label.
	Variance() Variance
	// Cmp provides a total ordering over field labels.
	Cmp(other FieldLabel) int
	// Hash returns a hashcode consistent with Cmp.
	Hash() uint64
	// String returns a parseable representation of this label.
	String() string
	// Seals the interface.
	isFieldLabel()
}

// Tags identify each field label variant for ordering purposes.
const (
	inTag uint8 = iota
	outTag
	derefTag
	loadTag
	storeTag
)

// ============================================================================
// In / Out
// ============================================================================

// In identifies an input parameter position, such as "in_0" for the first
// argument of a function.
type In struct{ Name string }

// Out identifies an output parameter position, such as "out_eax".
type Out struct{ Name string }

// InLabel constructs an input parameter label.
func InLabel(name string) FieldLabel { return In{name} }

// OutLabel constructs an output parameter label.
func OutLabel(name string) FieldLabel { return Out{name} }

// Variance implementation for FieldLabel interface.
func (p In) Variance() Variance { return CONTRAVARIANT }

// Variance implementation for FieldLabel interface.
func (p Out) Variance() Variance { return COVARIANT }

// Cmp implementation for FieldLabel interface.
func (p In) Cmp(other FieldLabel) int {
	if o, ok := other.(In); ok {
		return strings.Compare(p.Name, o.Name)
	}
	//
	return cmp.Compare(inTag, tagOf(other))
}

// Cmp implementation for FieldLabel interface.
func (p Out) Cmp(other FieldLabel) int {
	if o, ok := other.(Out); ok {
		return strings.Compare(p.Name, o.Name)
	}
	//
	return cmp.Compare(outTag, tagOf(other))
}

// Hash implementation for FieldLabel interface.
func (p In) Hash() uint64 { return hash.String(p.String()) }

// Hash implementation for FieldLabel interface.
func (p Out) Hash() uint64 { return hash.String(p.String()) }

func (p In) String() string  { return "in_" + p.Name }
func (p Out) String() string { return "out_" + p.Name }

func (p In) isFieldLabel()  {}
func (p Out) isFieldLabel() {}

// ============================================================================
// Deref
// ============================================================================

// Deref represents a memory dereference of a given size (in bytes) at a given
// (byte) offset, together with an optional bound describing how many
// consecutive elements may be accessed from that offset.
type Deref struct {
	Size   uint
	Offset int64
	Bound  Bound
}

// DerefLabel constructs a dereference label.
func DerefLabel(size uint, offset int64, bound Bound) FieldLabel {
	return Deref{size, offset, bound}
}

// Variance implementation for FieldLabel interface.
func (p Deref) Variance() Variance { return COVARIANT }

// Cmp implementation for FieldLabel interface.
func (p Deref) Cmp(other FieldLabel) int {
	o, ok := other.(Deref)
	if !ok {
		return cmp.Compare(derefTag, tagOf(other))
	} else if c := cmp.Compare(p.Offset, o.Offset); c != 0 {
		return c
	} else if c := cmp.Compare(p.Size, o.Size); c != 0 {
		return c
	}
	//
	return p.Bound.Cmp(o.Bound)
}

// Hash implementation for FieldLabel interface.
func (p Deref) Hash() uint64 { return hash.String(p.String()) }

func (p Deref) String() string {
	return fmt.Sprintf("σ%d@%d%s", p.Size, p.Offset, p.Bound.String())
}

func (p Deref) isFieldLabel() {}

// ============================================================================
// Load / Store
// ============================================================================

// Load marks a value read through a pointer.
type Load struct{}

// Store marks a value written through a pointer.
type Store struct{}

// LoadLabel constructs the (unique) load label.
func LoadLabel() FieldLabel { return Load{} }

// StoreLabel constructs the (unique) store label.
func StoreLabel() FieldLabel { return Store{} }

// Variance implementation for FieldLabel interface.
func (p Load) Variance() Variance { return COVARIANT }

// Variance implementation for FieldLabel interface.
func (p Store) Variance() Variance { return CONTRAVARIANT }

// Cmp implementation for FieldLabel interface.
func (p Load) Cmp(other FieldLabel) int { return cmp.Compare(loadTag, tagOf(other)) }

// Cmp implementation for FieldLabel interface.
func (p Store) Cmp(other FieldLabel) int { return cmp.Compare(storeTag, tagOf(other)) }

// Hash implementation for FieldLabel interface.
func (p Load) Hash() uint64 { return hash.String("load") }

// Hash implementation for FieldLabel interface.
func (p Store) Hash() uint64 { return hash.String("store") }

func (p Load) String() string  { return "load" }
func (p Store) String() string { return "store" }

func (p Load) isFieldLabel()  {}
func (p Store) isFieldLabel() {}

// ============================================================================
// Helpers
// ============================================================================

// PathVariance determines the variance of a sequence of labels, by composing
// the variance of each in turn.  The empty path is covariant.
func PathVariance(labels []FieldLabel) Variance {
	var v = COVARIANT
	//
	for _, l := range labels {
		v = v.Compose(l.Variance())
	}
	//
	return v
}

func tagOf(l FieldLabel) uint8 {
	switch l.(type) {
	case In:
		return inTag
	case Out:
		return outTag
	case Deref:
		return derefTag
	case Load:
		return loadTag
	case Store:
		return storeTag
	}
	//
	panic(fmt.Sprintf("unknown field label (%T)", l))
}

