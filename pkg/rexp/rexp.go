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
package rexp

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/consensys/go-retypd/pkg/label"
	"github.com/consensys/go-retypd/pkg/util/collection/hash"
)

// Kind identifies the form of a path expression.
type Kind uint8

const (
	// NULL represents the absence of any path.
	NULL Kind = iota
	// EMPTY represents the zero-length path.
	EMPTY
	// NODE represents a single edge.
	NODE
	// STAR represents zero or more repetitions of a path.
	STAR
	// OR represents the union of a set of paths.
	OR
	// AND represents the concatenation of a sequence of paths.
	AND
)

// Exp is a regular expression over edge labels, used to summarise the set of
// paths between two nodes in a constraint graph.  Expressions are immutable and
// may be freely shared.  The arguments of an OR are held in canonical order
// without duplicates, such that equality is structural and independent of the
// order in which alternatives were added.
type Exp struct {
	kind Kind
	// Edge label (NODE only)
	label label.EdgeLabel
	// Arguments (one for STAR, zero or more for OR / AND)
	args []*Exp
	// Cached hashcode
	hash uint64
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ hash.Hasher[*Exp] = (*Exp)(nil)

var (
	nullExp  = build(NULL, label.One(), nil)
	emptyExp = build(EMPTY, label.One(), nil)
)

// Null returns the expression representing no path at all.
func Null() *Exp { return nullExp }

// Empty returns the expression representing the zero-length path.
func Empty() *Exp { return emptyExp }

// Node constructs an expression representing a single edge with a given label.
func Node(l label.EdgeLabel) *Exp {
	return build(NODE, l, nil)
}

// Label constructs the expression for traversing an edge with a given label.
// Subtyping edges do not contribute to a path, hence give the empty path.
func Label(l label.EdgeLabel) *Exp {
	if l.IsOne() {
		return emptyExp
	}
	//
	return Node(l)
}

// Star constructs (without simplification) an expression representing zero or
// more repetitions of a given expression.
func Star(e *Exp) *Exp {
	return build(STAR, label.One(), []*Exp{e})
}

// NewOr constructs (without simplification) the union of zero or more
// expressions.  Duplicate alternatives are removed.  An empty union matches
// nothing, and simplifies to Null.
func NewOr(args ...*Exp) *Exp {
	return build(OR, label.One(), canonicalise(args))
}

// NewAnd constructs (without simplification) the concatenation of zero or more
// expressions in the given order.  An empty concatenation simplifies to Empty.
func NewAnd(args ...*Exp) *Exp {
	return build(AND, label.One(), slices.Clone(args))
}

// Concat two expressions together, short-circuiting on Null and Empty.  The
// result is not simplified.
func Concat(lhs *Exp, rhs *Exp) *Exp {
	switch {
	case lhs.kind == NULL || rhs.kind == NULL:
		return nullExp
	case lhs.kind == EMPTY:
		return rhs
	case rhs.kind == EMPTY:
		return lhs
	}
	//
	return NewAnd(lhs, rhs)
}

// Union two expressions together, short-circuiting on Null.  The result is not
// simplified.
func Union(lhs *Exp, rhs *Exp) *Exp {
	switch {
	case lhs.kind == NULL:
		return rhs
	case rhs.kind == NULL:
		return lhs
	}
	//
	return NewOr(lhs, rhs)
}

// Kind returns the form of this expression.
func (p *Exp) Kind() Kind { return p.kind }

// IsNull checks whether this expression represents no path.
func (p *Exp) IsNull() bool { return p.kind == NULL }

// IsEmpty checks whether this expression represents the empty path.
func (p *Exp) IsEmpty() bool { return p.kind == EMPTY }

// Label returns the edge label of a NODE expression.
func (p *Exp) Label() label.EdgeLabel {
	if p.kind != NODE {
		panic("expression has no label")
	}
	//
	return p.label
}

// Len returns the number of arguments of this expression.
func (p *Exp) Len() int { return len(p.args) }

// Arg returns the ith argument of this expression.
func (p *Exp) Arg(i int) *Exp { return p.args[i] }

// Args returns (a copy of) the arguments of this expression.
func (p *Exp) Args() []*Exp { return slices.Clone(p.args) }

// Hash implementation for the hash.Hasher interface.
func (p *Exp) Hash() uint64 { return p.hash }

// Equals checks whether two expressions are structurally identical.
func (p *Exp) Equals(other *Exp) bool {
	if p == other {
		return true
	} else if p.hash != other.hash || p.kind != other.kind || len(p.args) != len(other.args) {
		return false
	} else if p.kind == NODE {
		return p.label.Equals(other.label)
	}
	//
	for i, arg := range p.args {
		if !arg.Equals(other.args[i]) {
			return false
		}
	}
	//
	return true
}

// Cmp provides a total (structural) ordering over expressions.  This is used to
// hold the arguments of a union in canonical order.
func (p *Exp) Cmp(other *Exp) int {
	if p == other {
		return 0
	} else if c := cmp.Compare(p.kind, other.kind); c != 0 {
		return c
	} else if p.kind == NODE {
		return p.label.Cmp(other.label)
	}
	//
	for i := 0; i < len(p.args) && i < len(other.args); i++ {
		if c := p.args[i].Cmp(other.args[i]); c != 0 {
			return c
		}
	}
	//
	return cmp.Compare(len(p.args), len(other.args))
}

// Construct an expression and compute its hashcode.
func build(kind Kind, l label.EdgeLabel, args []*Exp) *Exp {
	// FNV1a over the kind, label and argument hashes
	h := offset64
	h = (h ^ uint64(kind)) * prime64
	//
	if kind == NODE {
		h = (h ^ l.Hash()) * prime64
	}
	//
	for _, arg := range args {
		if arg == nil {
			panic(fmt.Sprintf("nil argument in %d expression", kind))
		}
		//
		h = (h ^ arg.hash) * prime64
	}
	//
	return &Exp{kind, l, args, h}
}

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211
)

// Sort and deduplicate the alternatives of a union.
func canonicalise(args []*Exp) []*Exp {
	nargs := slices.Clone(args)
	slices.SortFunc(nargs, (*Exp).Cmp)
	//
	return slices.CompactFunc(nargs, (*Exp).Equals)
}
