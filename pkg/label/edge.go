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

// EdgeKind classifies the edges of a constraint graph.
type EdgeKind uint8

const (
	// ONE edges arise from subtyping constraints.  They carry no field label and
	// correspond to the empty path.
	ONE EdgeKind = iota
	// RECALL edges go from a variable x to a derived variable x.l.
	RECALL
	// FORGET edges go from a derived variable x.l back to x.
	FORGET
)

// EdgeLabel is the label attached to a constraint graph edge, and is the atomic
// symbol of a path expression.
type EdgeLabel struct {
	kind EdgeKind
	// Field label (nil for ONE edges).
	field FieldLabel
}

// One constructs the label of a subtyping edge.
func One() EdgeLabel { return EdgeLabel{ONE, nil} }

// Recall constructs a label for an edge which pushes a given field label.
func Recall(field FieldLabel) EdgeLabel {
	if field == nil {
		panic("recall requires a field label")
	}
	//
	return EdgeLabel{RECALL, field}
}

// Forget constructs a label for an edge which pops a given field label.
func Forget(field FieldLabel) EdgeLabel {
	if field == nil {
		panic("forget requires a field label")
	}
	//
	return EdgeLabel{FORGET, field}
}

// Kind returns the kind of this edge label.
func (p EdgeLabel) Kind() EdgeKind { return p.kind }

// IsOne checks whether this is the label of a subtyping edge.
func (p EdgeLabel) IsOne() bool { return p.kind == ONE }

// Field returns the field label of a recall or forget edge.
func (p EdgeLabel) Field() FieldLabel {
	if p.kind == ONE {
		panic("one edge has no field label")
	}
	//
	return p.field
}

// Variance of the field label carried on this edge.  Subtyping edges are
// covariant.
func (p EdgeLabel) Variance() Variance {
	if p.kind == ONE {
		return COVARIANT
	}
	//
	return p.field.Variance()
}

// Equals checks whether two edge labels are identical.
func (p EdgeLabel) Equals(other EdgeLabel) bool {
	return p.Cmp(other) == 0
}

// Cmp provides a total order over edge labels.
func (p EdgeLabel) Cmp(other EdgeLabel) int {
	if c := cmp.Compare(p.kind, other.kind); c != 0 || p.kind == ONE {
		return c
	}
	//
	return p.field.Cmp(other.field)
}

// Hash returns a hashcode consistent with Equals.
func (p EdgeLabel) Hash() uint64 {
	if p.kind == ONE {
		return 1
	}
	//
	return (p.field.Hash() * 31) + uint64(p.kind)
}

func (p EdgeLabel) String() string {
	switch p.kind {
	case ONE:
		return "1"
	case RECALL:
		return "recall_" + p.field.String()
	case FORGET:
		return "forget_" + p.field.String()
	}
	//
	panic(fmt.Sprintf("unknown edge kind (%d)", p.kind))
}
