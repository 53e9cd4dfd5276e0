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
	"github.com/consensys/go-retypd/pkg/util/collection/hash"
)

// Table hash-conses expressions, such that structurally identical expressions
// interned through the same table are represented by the same value.  A table
// is not safe for concurrent use; the intention is that each analysis unit
// owns its own table.
type Table struct {
	entries *hash.Map[*Exp, *Exp]
}

// NewTable constructs an empty interning table.
func NewTable() *Table {
	return &Table{hash.NewMap[*Exp, *Exp](64)}
}

// Size returns the number of distinct expressions held in this table.
func (p *Table) Size() uint {
	return p.entries.Size()
}

// Intern returns the canonical representative of a given expression, which is
// structurally equal to it.  All subexpressions of the result are themselves
// canonical.
func (p *Table) Intern(e *Exp) *Exp {
	switch e.kind {
	case NULL:
		return nullExp
	case EMPTY:
		return emptyExp
	}
	// Check whether already present
	if r, ok := p.entries.Get(e); ok {
		return r
	}
	// Intern arguments
	var args []*Exp
	//
	if len(e.args) > 0 {
		args = make([]*Exp, len(e.args))
		for i, arg := range e.args {
			args[i] = p.Intern(arg)
		}
	}
	// Arguments are already in canonical order, hence the hashcode is unchanged.
	r := &Exp{e.kind, e.label, args, e.hash}
	p.entries.Insert(r, r)
	//
	return r
}
